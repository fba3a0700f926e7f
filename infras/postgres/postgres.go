package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"roomslot/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnection = 10
	maxOpenConnection = 10
	connMaxLifetime   = 30 * time.Minute
)

// Connection holds the read replica and the primary. Anything that takes a row
// lock or runs inside a transaction must use Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	conn := &Connection{Write: connect("write", pg.Write, pg.Prefix, pg.MaxRetry, pg.RetryWaitTime)}

	if pg.Read.Host == "" {
		conn.Read = conn.Write
	} else {
		conn.Read = connect("read", pg.Read, pg.Prefix, pg.MaxRetry, pg.RetryWaitTime)
	}

	return conn
}

// Close releases both pools. Read and Write may be the same pool.
func (c *Connection) Close() {
	if c.Write != nil {
		if err := c.Write.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close write connection")
		}
	}

	if c.Read != nil && c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close read connection")
		}
	}
}

// DSN builds the lib/pq URL for one side of the pair. Credentials are escaped so
// passwords may carry reserved characters.
func DSN(p config.Postgres, prefix string) string {
	query := url.Values{}
	if p.SSLMode != "" {
		query.Set("sslmode", p.SSLMode)
	}

	if p.Timezone != "" {
		query.Set("timezone", p.Timezone)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Username, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + prefix + p.Name,
		RawQuery: query.Encode(),
	}

	return u.String()
}

// connect retries a fixed number of times and returns nil when the database never
// answered.
func connect(role string, p config.Postgres, prefix string, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().Str("name", role).Str("host", p.Host).Str("port", p.Port).Str("dbName", prefix+p.Name).Logger()

	for attempt := 1; attempt <= max(maxRetry, 1); attempt++ {
		db, err := sqlx.Connect("postgres", DSN(p, prefix))
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnection)
			db.SetMaxOpenConns(maxOpenConnection)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Error().Msg("Giving up connecting to database")

	return nil
}
