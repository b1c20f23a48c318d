package postgres

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_intake",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_challenges",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_progression",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: INTAKE LOG, DRINK CATALOG, SETTINGS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Drink catalog. Built-ins are seeded here with stable ids so intake rows
-- survive re-seeding; user-defined drinks carry is_custom = TRUE.
CREATE TABLE IF NOT EXISTS drinks (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    icon VARCHAR(16) NOT NULL DEFAULT '',
    category VARCHAR(20) NOT NULL,
    hydration_multiplier DOUBLE PRECISION NOT NULL,
    caffeine_mg_per_serving DOUBLE PRECISION NOT NULL DEFAULT 0,
    alcohol_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
    sugar_g_per_serving DOUBLE PRECISION NOT NULL DEFAULT 0,
    is_custom BOOLEAN NOT NULL DEFAULT FALSE,

    CONSTRAINT valid_multiplier CHECK (hydration_multiplier >= 0 AND hydration_multiplier <= 2),
    CONSTRAINT valid_caffeine CHECK (caffeine_mg_per_serving >= 0),
    CONSTRAINT valid_alcohol CHECK (alcohol_percent >= 0 AND alcohol_percent <= 100),
    CONSTRAINT valid_sugar CHECK (sugar_g_per_serving >= 0)
);

INSERT INTO drinks (id, name, icon, category, hydration_multiplier, caffeine_mg_per_serving, alcohol_percent, sugar_g_per_serving, is_custom) VALUES
    ('drink-water',      'Water',        '💧', 'water',      1.00,  0, 0,  0, FALSE),
    ('drink-tea',        'Tea',          '🍵', 'tea',        0.95, 30, 0,  0, FALSE),
    ('drink-coffee',     'Coffee',       '☕', 'coffee',     0.90, 95, 0,  0, FALSE),
    ('drink-juice',      'Juice',        '🧃', 'juice',      0.85,  0, 0, 20, FALSE),
    ('drink-soda',       'Soda',         '🥤', 'soda',       0.70, 35, 0, 35, FALSE),
    ('drink-milk',       'Milk',         '🥛', 'milk',       0.90,  0, 0,  0, FALSE),
    ('drink-plant-milk', 'Plant Milk',   '🌱', 'plant_milk', 0.90,  0, 0,  0, FALSE),
    ('drink-beer',       'Beer',         '🍺', 'beer',       0.60,  0, 5,  0, FALSE),
    ('drink-wine',       'Wine',         '🍷', 'wine',       0.40,  0, 12, 0, FALSE),
    ('drink-energy',     'Energy Drink', '⚡', 'energy',     0.75, 80, 0, 27, FALSE)
ON CONFLICT (id) DO NOTHING;

-- Append-mostly intake event log. Derived figures (daily progress, streaks)
-- are always recomputed from this table, never stored.
CREATE TABLE IF NOT EXISTS intake_events (
    id UUID PRIMARY KEY,
    drink_id VARCHAR(64) NOT NULL,
    amount_ml INTEGER NOT NULL,
    ts TIMESTAMP WITH TIME ZONE NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT positive_amount CHECK (amount_ml > 0)
);

CREATE INDEX IF NOT EXISTS idx_intake_events_ts ON intake_events(ts);

-- Single-row hydration settings.
CREATE TABLE IF NOT EXISTS settings (
    id VARCHAR(20) PRIMARY KEY,
    daily_goal_ml INTEGER NOT NULL DEFAULT 2000,
    wake_up_time VARCHAR(5) NOT NULL DEFAULT '07:00',
    bed_time VARCHAR(5) NOT NULL DEFAULT '23:00',
    timezone VARCHAR(64) NOT NULL DEFAULT 'UTC',
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

const migration001Down = `
DROP TABLE IF EXISTS settings;
DROP TABLE IF EXISTS intake_events;
DROP TABLE IF EXISTS drinks;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CHALLENGES
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
CREATE TABLE IF NOT EXISTS challenges (
    id UUID PRIMARY KEY,
    challenge_type VARCHAR(40) NOT NULL,
    status VARCHAR(20) NOT NULL,
    start_date TIMESTAMP WITH TIME ZONE NOT NULL,
    end_date TIMESTAMP WITH TIME ZONE NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_status CHECK (status IN ('active', 'completed', 'violated', 'abandoned'))
);

-- At most one active run per challenge type.
CREATE UNIQUE INDEX IF NOT EXISTS idx_challenges_active_type
    ON challenges(challenge_type) WHERE status = 'active';
CREATE INDEX IF NOT EXISTS idx_challenges_status ON challenges(status);
CREATE INDEX IF NOT EXISTS idx_challenges_created_at ON challenges(created_at DESC);

CREATE TABLE IF NOT EXISTS challenge_violations (
    id UUID PRIMARY KEY,
    challenge_id UUID NOT NULL REFERENCES challenges(id) ON DELETE CASCADE,
    violation_date TIMESTAMP WITH TIME ZONE NOT NULL,
    drink_name VARCHAR(100) NOT NULL,
    drink_icon VARCHAR(16) NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_challenge_violations_challenge
    ON challenge_violations(challenge_id);

-- Per-event evaluation marks. The primary key makes re-evaluation of a
-- redelivered intake event a no-op.
CREATE TABLE IF NOT EXISTS challenge_evaluations (
    challenge_id UUID NOT NULL REFERENCES challenges(id) ON DELETE CASCADE,
    event_id UUID NOT NULL,
    evaluated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (challenge_id, event_id)
);
`

const migration002Down = `
DROP TABLE IF EXISTS challenge_evaluations;
DROP TABLE IF EXISTS challenge_violations;
DROP TABLE IF EXISTS challenges;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: ACHIEVEMENTS AND PROFILE
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
CREATE TABLE IF NOT EXISTS achievements (
    achievement_type VARCHAR(50) PRIMARY KEY,
    progress INTEGER NOT NULL DEFAULT 0,
    progress_max INTEGER NOT NULL,
    is_unlocked BOOLEAN NOT NULL DEFAULT FALSE,
    unlocked_at TIMESTAMP WITH TIME ZONE,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_progress CHECK (progress >= 0 AND progress <= progress_max)
);

-- Singleton progression profile. Character and drink sets are JSONB arrays
-- in insertion order.
CREATE TABLE IF NOT EXISTS profile (
    id VARCHAR(20) PRIMARY KEY,
    total_xp INTEGER NOT NULL DEFAULT 0,
    unlocked_characters JSONB NOT NULL DEFAULT '[]'::jsonb,
    unique_drinks JSONB NOT NULL DEFAULT '[]'::jsonb,
    total_drinks_logged INTEGER NOT NULL DEFAULT 0,
    challenges_completed INTEGER NOT NULL DEFAULT 0,
    achievements_unlocked INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_xp CHECK (total_xp >= 0)
);
`

const migration003Down = `
DROP TABLE IF EXISTS profile;
DROP TABLE IF EXISTS achievements;
`
