package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magicalhell/horde/internal/bot"
	"github.com/magicalhell/horde/internal/config"
	"github.com/magicalhell/horde/internal/core/rng"
	"github.com/magicalhell/horde/internal/data"
	"github.com/magicalhell/horde/internal/match"
	"github.com/magicalhell/horde/internal/scripting"
	"github.com/magicalhell/horde/internal/sim"
	"github.com/magicalhell/horde/internal/system"
	"github.com/magicalhell/horde/internal/trace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m               horde  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       headless survival simulation        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	s := fmt.Sprint(value)
	dotsLen := 42 - len(label) - len(s)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), s)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Runner ─────────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/horde.toml"
	if p := os.Getenv("HORDE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Data and scripts
	printSection("data")
	kinds := data.DefaultEnemyTable()
	if cfg.Data.EnemyTable != "" {
		kinds, err = data.LoadEnemyTable(cfg.Data.EnemyTable)
		if err != nil {
			return fmt.Errorf("enemy table: %w", err)
		}
	}
	printStat("enemy kinds", kinds.Count())

	var damage system.DamageCalculator = system.FixedDamage{}
	if cfg.Scripting.Enabled {
		eng, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer eng.Close()
		damage = eng
		printOK("lua damage hooks loaded")
	}
	fmt.Println()

	// 4. Build the game and the headless host
	game, err := sim.New(sim.Options{
		Config: cfg,
		Kinds:  kinds,
		Damage: damage,
		Rand:   rng.New(cfg.Sim.Seed),
		Log:    log,
	})
	if err != nil {
		return fmt.Errorf("build game: %w", err)
	}
	host := bot.NewHost(game, bot.Pilot{
		KiteDistance: envFloat("HORDE_KITE", 0),
		Range:        cfg.Gun.BulletSpeed * cfg.Gun.BulletLifetime.Seconds(),
	})

	// 5. Optional msgpack trace of every tick's output
	var rec *trace.Recorder
	if p := os.Getenv("HORDE_TRACE"); p != "" {
		f, err := os.Create(p)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()
		rec = trace.NewRecorder(w)
		printOK(fmt.Sprintf("tracing to %s", p))
	}

	// 6. Walk the menus: Loading → MainMenu → GameInit
	if err := game.Request(match.MainMenu); err != nil {
		return err
	}
	host.Step(cfg.Sim.TickRate)
	if err := game.Request(match.GameInit); err != nil {
		return err
	}

	// 7. Game loop. HORDE_FAST=1 skips the ticker and runs as fast as possible.
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	var tickCh <-chan time.Time
	fast := os.Getenv("HORDE_FAST") == "1"
	if !fast {
		ticker := time.NewTicker(cfg.Sim.TickRate)
		defer ticker.Stop()
		tickCh = ticker.C
	}

	printSection("simulation")
	printReady(fmt.Sprintf("game loop started (tick: %s, fast: %v)", cfg.Sim.TickRate, fast))
	fmt.Println()

	var tick uint64
	step := func() error {
		tick++
		out := host.Step(cfg.Sim.TickRate)
		if rec != nil {
			if err := rec.Record(trace.FrameOf(tick, game.Now(), game.State(), out)); err != nil {
				return err
			}
		}
		if cfg.Sim.MaxTicks > 0 && tick >= uint64(cfg.Sim.MaxTicks) && game.State() == match.InGame {
			log.Info("tick limit reached", zap.Uint64("ticks", tick))
			return game.Request(match.MainMenu)
		}
		return nil
	}

	for game.State() != match.MainMenu || tick == 0 {
		if fast {
			select {
			case sig := <-shutdownCh:
				log.Info("shutdown signal received", zap.String("signal", sig.String()))
				return endMatch(game, host, cfg.Sim.TickRate)
			default:
			}
			if err := step(); err != nil {
				return err
			}
			continue
		}
		select {
		case <-tickCh:
			if err := step(); err != nil {
				return err
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return endMatch(game, host, cfg.Sim.TickRate)
		}
	}

	printReport(game.Stats(), rec)
	return nil
}

// endMatch stops a running match so its statistics are finalised.
func endMatch(game *sim.Game, host *bot.Host, dt time.Duration) error {
	if game.State() == match.InGame {
		if err := game.Request(match.MainMenu); err != nil {
			return err
		}
		host.Step(dt)
	}
	printReport(game.Stats(), nil)
	return nil
}

func printReport(st sim.Stats, rec *trace.Recorder) {
	fmt.Println()
	printSection("match over")
	printStat("match", st.MatchID)
	printStat("survived", st.Survived.Round(time.Millisecond))
	printStat("ticks", st.Ticks)
	printStat("kills", st.Kills)
	for kind, n := range st.KillsByKind {
		printStat("  "+kind, n)
	}
	printStat("bullets fired", st.BulletsFired)
	printStat("damage taken", st.DamageTaken)
	if rec != nil {
		printStat("trace frames", rec.Frames())
	}
	fmt.Println()
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var f float64
	if _, err := fmt.Sscanf(v, "%g", &f); err != nil {
		return def
	}
	return f
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
