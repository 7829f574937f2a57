package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gofiber/fiber/v3"
	"github.com/nulln0ne/exchange-liquidity/internal/contracts"
	"github.com/nulln0ne/exchange-liquidity/internal/ethtest"
	"github.com/nulln0ne/exchange-liquidity/internal/liquidity"
	"github.com/nulln0ne/exchange-liquidity/internal/service"
	"github.com/stretchr/testify/require"
)

var (
	tokenAddr    = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	exchangeAddr = common.HexToAddress("0x0000000000000000000000000000000000000abc")
)

func newTestApp(t *testing.T, nativeReserve, tokenReserve int64, withSigner bool) (*fiber.App, *ethtest.Node) {
	t.Helper()

	node := ethtest.NewNode(1337)
	node.SetBalance(exchangeAddr, big.NewInt(nativeReserve))
	out, err := contracts.ExchangeABI.Methods["getReserve"].Outputs.Pack(big.NewInt(tokenReserve))
	require.NoError(t, err)
	node.SetCallResult(exchangeAddr, contracts.ExchangeABI.Methods["getReserve"].ID, out)

	ec := node.Client(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	exchange := contracts.NewExchange(exchangeAddr, ec)
	token := contracts.NewToken(tokenAddr, ec)
	provider := liquidity.NewProvider(logger, token, exchange)

	var signer *bind.TransactOpts
	if withSigner {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		signer, err = bind.NewKeyedTransactorWithChainID(key, node.ChainID())
		require.NoError(t, err)
		signer.Nonce = big.NewInt(0)
		signer.GasPrice = big.NewInt(1)
		signer.GasLimit = 200_000
	}

	svc := service.NewLiquidityService(logger, exchange, token, provider, signer, 18)
	app := fiber.New()
	NewLiquidityHandler(logger, svc, 18).Register(app)
	return app, node
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestQuoteHandler_OK(t *testing.T) {
	app, _ := newTestApp(t, 1_000, 5_000, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/quote?eth_amount=1", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "5000000000000000000", readBody(t, resp))
}

func TestQuoteHandler_Validation(t *testing.T) {
	app, _ := newTestApp(t, 1_000, 5_000, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/quote", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/quote?eth_amount=abc", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuoteHandler_ExponentAmount(t *testing.T) {
	app, _ := newTestApp(t, 1_000, 5_000, false)

	start := time.Now()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/quote?eth_amount=1e20000000", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Less(t, time.Since(start), 500*time.Millisecond)

	long := "1" + strings.Repeat("0", 70)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/quote?eth_amount="+long, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuoteHandler_EmptyPool(t *testing.T) {
	app, _ := newTestApp(t, 0, 0, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/quote?eth_amount=1", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReservesHandler(t *testing.T) {
	app, _ := newTestApp(t, 1_500_000_000_000_000_000, 42, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reserves", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got ReservesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "1500000000000000000", got.Native)
	require.Equal(t, "1.5", got.NativeDisplay)
	require.Equal(t, "42", got.Token)
	require.Equal(t, "0.000000000000000042", got.TokenDisplay)
}

func postLiquidity(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/liquidity", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestProvideHandler_OK(t *testing.T) {
	app, node := newTestApp(t, 1_000, 5_000, true)

	resp := postLiquidity(t, app, `{"eth_amount":"1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got ProvideResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "1000000000000000000", got.NativeAmount)
	require.Equal(t, "5000000000000000000", got.TokenAmount)
	require.False(t, got.Initial)

	sent := node.Sent()
	require.Len(t, sent, 2)
	require.Equal(t, sent[0].Hash().Hex(), got.ApprovalTx)
	require.Equal(t, sent[1].Hash().Hex(), got.DepositTx)
}

func TestProvideHandler_Errors(t *testing.T) {
	readOnly, _ := newTestApp(t, 1_000, 5_000, false)
	resp := postLiquidity(t, readOnly, `{"eth_amount":"1"}`)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	app, node := newTestApp(t, 1_000, 5_000, true)
	resp = postLiquidity(t, app, `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postLiquidity(t, app, `{"eth_amount":"0"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	node.Revert(tokenAddr)
	resp = postLiquidity(t, app, `{"eth_amount":"1"}`)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	empty, _ := newTestApp(t, 0, 0, true)
	resp = postLiquidity(t, empty, `{"eth_amount":"1"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPositionHandler(t *testing.T) {
	account := common.HexToAddress("0x00000000000000000000000000000000000000f1")
	app, node := newTestApp(t, 1_000, 5_000, false)
	pack := func(v int64) []byte {
		out, err := contracts.TokenABI.Methods["allowance"].Outputs.Pack(big.NewInt(v))
		require.NoError(t, err)
		return out
	}
	node.SetCallResult(tokenAddr, contracts.TokenABI.Methods["balanceOf"].ID, pack(300))
	node.SetCallResult(tokenAddr, contracts.TokenABI.Methods["allowance"].ID, pack(40))
	node.SetCallResult(exchangeAddr, contracts.ExchangeABI.Methods["balanceOf"].ID, pack(7))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/position?account="+account.Hex(), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got PositionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, account.Hex(), got.Account)
	require.Equal(t, "300", got.TokenBalance)
	require.Equal(t, "40", got.Allowance)
	require.Equal(t, "7", got.Shares)
}

func TestPositionHandler_Validation(t *testing.T) {
	app, _ := newTestApp(t, 1_000, 5_000, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/position", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/position?account=0x1234", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
