// Package ethtest serves a scripted "eth" JSON-RPC namespace in process so
// that code built on ethclient can be tested without a node.
package ethtest

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Node records sent transactions, mines each of them immediately, and
// answers eth_call from a table keyed by contract and selector.
type Node struct {
	mu        sync.Mutex
	chainID   *big.Int
	balances  map[common.Address]*big.Int
	calls     map[common.Address]map[[4]byte][]byte
	reverting map[common.Address]bool
	sendErr   error
	sent      []*types.Transaction
}

func NewNode(chainID int64) *Node {
	return &Node{
		chainID:   big.NewInt(chainID),
		balances:  make(map[common.Address]*big.Int),
		calls:     make(map[common.Address]map[[4]byte][]byte),
		reverting: make(map[common.Address]bool),
	}
}

func (n *Node) ChainID() *big.Int { return new(big.Int).Set(n.chainID) }

func (n *Node) SetBalance(addr common.Address, v *big.Int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balances[addr] = new(big.Int).Set(v)
}

// SetCallResult makes eth_call to `to` with the given 4-byte selector return out.
func (n *Node) SetCallResult(to common.Address, selector []byte, out []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	m, ok := n.calls[to]
	if !ok {
		m = make(map[[4]byte][]byte)
		n.calls[to] = m
	}
	var key [4]byte
	copy(key[:], selector)
	m[key] = out
}

// Revert makes every transaction sent to addr mine with a failed status.
func (n *Node) Revert(addr common.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reverting[addr] = true
}

// FailSends makes eth_sendRawTransaction return err.
func (n *Node) FailSends(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sendErr = err
}

func (n *Node) Sent() []*types.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*types.Transaction(nil), n.sent...)
}

// Client returns an ethclient connected to n over an in-process RPC server.
func (n *Node) Client(t testing.TB) *ethclient.Client {
	t.Helper()
	srv := gethrpc.NewServer()
	// Register under the standard "eth" namespace so methods map to eth_*
	if err := srv.RegisterName("eth", &ethService{node: n}); err != nil {
		t.Fatalf("register rpc service: %v", err)
	}
	c := gethrpc.DialInProc(srv)
	ec := ethclient.NewClient(c)
	t.Cleanup(func() {
		ec.Close()
		srv.Stop()
	})
	return ec
}

type ethService struct {
	node *Node
}

func (s *ethService) ChainId(ctx context.Context) (*hexutil.Big, error) {
	return (*hexutil.Big)(s.node.ChainID()), nil
}

func (s *ethService) GetBalance(ctx context.Context, addr common.Address, _ gethrpc.BlockNumberOrHash) (*hexutil.Big, error) {
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	if v, ok := s.node.balances[addr]; ok {
		return (*hexutil.Big)(new(big.Int).Set(v)), nil
	}
	return (*hexutil.Big)(new(big.Int)), nil
}

func (s *ethService) Call(ctx context.Context, args map[string]interface{}, _ gethrpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	to, _ := args["to"].(string)
	input, _ := args["input"].(string)
	if input == "" {
		input, _ = args["data"].(string)
	}
	data, err := hexutil.Decode(input)
	if err != nil || len(data) < 4 {
		return nil, errors.New("execution reverted: bad calldata")
	}
	var key [4]byte
	copy(key[:], data[:4])

	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	if out, ok := s.node.calls[common.HexToAddress(to)][key]; ok {
		return hexutil.Bytes(out), nil
	}
	return nil, errors.New("execution reverted")
}

func (s *ethService) SendRawTransaction(ctx context.Context, raw hexutil.Bytes) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, err
	}

	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	if s.node.sendErr != nil {
		return common.Hash{}, s.node.sendErr
	}
	s.node.sent = append(s.node.sent, tx)
	return tx.Hash(), nil
}

func (s *ethService) GetTransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	for i, tx := range s.node.sent {
		if tx.Hash() != hash {
			continue
		}
		status := types.ReceiptStatusSuccessful
		if to := tx.To(); to != nil && s.node.reverting[*to] {
			status = types.ReceiptStatusFailed
		}
		return &types.Receipt{
			Type:              tx.Type(),
			Status:            status,
			CumulativeGasUsed: 21_000,
			Logs:              []*types.Log{},
			TxHash:            hash,
			GasUsed:           21_000,
			BlockHash:         common.BigToHash(big.NewInt(int64(i + 1))),
			BlockNumber:       big.NewInt(int64(i + 1)),
		}, nil
	}
	return nil, nil
}
