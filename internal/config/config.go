package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim       SimConfig       `toml:"sim"`
	World     WorldConfig     `toml:"world"`
	Player    PlayerConfig    `toml:"player"`
	Enemy     EnemyConfig     `toml:"enemy"`
	Gun       GunConfig       `toml:"gun"`
	Combat    CombatConfig    `toml:"combat"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

type SimConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	Seed     int64         `toml:"seed"`      // 0 = time-based
	MaxTicks int           `toml:"max_ticks"` // headless runner stop condition, 0 = until death
}

type WorldConfig struct {
	Width       float64 `toml:"width"`  // decorations spawn in [-width, width)
	Height      float64 `toml:"height"` // and [-height, height)
	Decorations int     `toml:"decorations"`
	TileSize    float64 `toml:"tile_size"`    // sprite tile edge in atlas pixels
	SpriteScale float64 `toml:"sprite_scale"` // uniform render scale of every sprite
}

type PlayerConfig struct {
	Speed  float64 `toml:"speed"` // units per tick
	Health uint32  `toml:"health"`
}

type EnemyConfig struct {
	Max              int           `toml:"max"`
	SpawnRateCap     int           `toml:"spawn_rate_cap"` // most enemies created per spawn cycle
	SpawnInterval    time.Duration `toml:"spawn_interval"`
	Health           uint32        `toml:"health"`
	Speed            float64       `toml:"speed"` // units per tick
	ContactDamage    uint32        `toml:"contact_damage"`
	SpawnMinDistance float64       `toml:"spawn_min_distance"`
	SpawnMaxDistance float64       `toml:"spawn_max_distance"`
}

type GunConfig struct {
	FireInterval   time.Duration `toml:"fire_interval"`
	BulletsPerShot int           `toml:"bullets_per_shot"`
	BulletSpeed    float64       `toml:"bullet_speed"` // units per second
	BulletLifetime time.Duration `toml:"bullet_lifetime"`
	BulletDamage   uint32        `toml:"bullet_damage"`
	Jitter         float64       `toml:"jitter"`        // per-axis spread added to the unit aim direction
	OrbitRadius    float64       `toml:"orbit_radius"`  // gun distance from the player pivot
	MuzzleOffset   float64       `toml:"muzzle_offset"` // bullet spawn distance ahead of the gun
}

type CombatConfig struct {
	// DedupeContacts counts at most one hit per enemy per tick. Off by
	// default: N touching enemies deal N hits.
	DedupeContacts bool `toml:"dedupe_contacts"`
	// BulletHitsEnemies applies bullet damage to enemies on contact and
	// removes the bullet.
	BulletHitsEnemies bool `toml:"bullet_hits_enemies"`
}

type DataConfig struct {
	EnemyTable string `toml:"enemy_table"` // empty = built-in kinds
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a TOML document over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Sim.TickRate <= 0 {
		errs = append(errs, errors.New("sim.tick_rate must be positive"))
	}
	if c.Player.Health == 0 {
		errs = append(errs, errors.New("player.health must be positive"))
	}
	if c.Enemy.Max <= 0 {
		errs = append(errs, errors.New("enemy.max must be positive"))
	}
	if c.Enemy.SpawnRateCap <= 0 {
		errs = append(errs, errors.New("enemy.spawn_rate_cap must be positive"))
	}
	if c.Enemy.SpawnInterval <= 0 {
		errs = append(errs, errors.New("enemy.spawn_interval must be positive"))
	}
	if c.Enemy.Health == 0 {
		errs = append(errs, errors.New("enemy.health must be positive"))
	}
	if c.Enemy.SpawnMinDistance < 0 || c.Enemy.SpawnMaxDistance <= c.Enemy.SpawnMinDistance {
		errs = append(errs, errors.New("enemy spawn distance range must satisfy 0 <= min < max"))
	}
	if c.Gun.FireInterval <= 0 {
		errs = append(errs, errors.New("gun.fire_interval must be positive"))
	}
	if c.Gun.BulletsPerShot < 0 {
		errs = append(errs, errors.New("gun.bullets_per_shot must not be negative"))
	}
	if c.Gun.BulletLifetime <= 0 {
		errs = append(errs, errors.New("gun.bullet_lifetime must be positive"))
	}
	if c.Gun.Jitter < 0 {
		errs = append(errs, errors.New("gun.jitter must not be negative"))
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, errors.New("world.width and world.height must be positive"))
	}
	return errors.Join(errs...)
}

// Default returns the stock tuning of the game.
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate: time.Second / 60,
		},
		World: WorldConfig{
			Width:       250,
			Height:      250,
			Decorations: 1,
			TileSize:    16,
			SpriteScale: 2,
		},
		Player: PlayerConfig{
			Speed:  5,
			Health: 100,
		},
		Enemy: EnemyConfig{
			Max:              5,
			SpawnRateCap:     500,
			SpawnInterval:    time.Second,
			Health:           100,
			Speed:            1,
			ContactDamage:    1,
			SpawnMinDistance: 500,
			SpawnMaxDistance: 600,
		},
		Gun: GunConfig{
			FireInterval:   200 * time.Millisecond,
			BulletsPerShot: 1,
			BulletSpeed:    300,
			BulletLifetime: time.Second,
			BulletDamage:   15,
			Jitter:         0.2,
			OrbitRadius:    7,
			MuzzleOffset:   10,
		},
		Combat: CombatConfig{
			DedupeContacts:    false,
			BulletHitsEnemies: true,
		},
		Data: DataConfig{
			EnemyTable: "data/yaml/enemy_list.yaml",
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
