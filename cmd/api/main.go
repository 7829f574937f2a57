package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"github.com/nulln0ne/exchange-liquidity/internal/config"
	"github.com/nulln0ne/exchange-liquidity/internal/contracts"
	"github.com/nulln0ne/exchange-liquidity/internal/eth"
	"github.com/nulln0ne/exchange-liquidity/internal/handler"
	"github.com/nulln0ne/exchange-liquidity/internal/liquidity"
	"github.com/nulln0ne/exchange-liquidity/internal/logging"
	"github.com/nulln0ne/exchange-liquidity/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	app := fiber.New()
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ethereumClient, err := eth.Dial(ctx, cfg.RPCEndpoint)
	if err != nil {
		return fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}

	var signer *bind.TransactOpts
	if cfg.PrivateKey != "" {
		signer, err = eth.NewSigner(ctx, ethereumClient, cfg.PrivateKey, cfg.ChainID)
		if err != nil {
			ethereumClient.Close()
			return fmt.Errorf("failed to build signer: %w", err)
		}
		logger.Info("deposits enabled", "from", signer.From.Hex())
	} else {
		logger.Warn("PRIVATE_KEY not set; serving quotes only")
	}

	token := contracts.NewToken(cfg.TokenAddress, ethereumClient)
	exchange := contracts.NewExchange(cfg.ExchangeAddress, ethereumClient)
	provider := liquidity.NewProvider(logger, token, exchange)

	liquidityService := service.NewLiquidityService(logger, exchange, token, provider, signer, cfg.TokenDecimals)
	handler.NewLiquidityHandler(logger, liquidityService, cfg.TokenDecimals).Register(app)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = app.Shutdown()
			ethereumClient.Close()
			return fmt.Errorf("server error: %w", err)
		}
		ethereumClient.Close()
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_ = app.ShutdownWithContext(shutdownCtx)

	ethereumClient.Close()
	return nil
}
