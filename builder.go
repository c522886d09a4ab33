package classicmatch

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"classicmatch/password"
	"classicmatch/session"
	"classicmatch/signer"
)

// Builder assembles an Engine from a Config and its collaborators. Configure
// it during initialization, call Build once, and discard it.
type Builder struct {
	config Config
	redis  *redis.Client

	accounts AccountProvider
	codes    CodeStore
	notifier Notifier
	sink     AuditSink
	now      func() time.Time

	built bool
}

// New returns a Builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration wholesale. Zero-valued
// sections are not backfilled; start from the defaults and override.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithSecret sets the HMAC signing secret.
func (b *Builder) WithSecret(secret string) *Builder {
	b.config.Secret = secret
	return b
}

// WithAccountProvider sets the account storage backend. Required.
func (b *Builder) WithAccountProvider(p AccountProvider) *Builder {
	b.accounts = p
	return b
}

// WithCodeStore sets the one-time code storage backend. Required.
func (b *Builder) WithCodeStore(s CodeStore) *Builder {
	b.codes = s
	return b
}

// WithNotifier sets the code delivery channel. Required.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithRedis provides the Redis client backing the optional login throttle.
// Only required when LoginThrottle.Enabled is set.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAuditSink sets the destination for audit events. Events are only
// dispatched when Audit.Enabled is set in the config.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.sink = sink
	return b
}

// WithClock overrides the engine's time source. Test hook.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build validates the configuration, wires the collaborators, and returns a
// ready Engine. A Builder can build at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if b.accounts == nil {
		return nil, errors.New("account provider required")
	}
	if b.codes == nil {
		return nil, errors.New("code store required")
	}
	if b.notifier == nil {
		return nil, errors.New("notifier required")
	}
	if b.config.LoginThrottle.Enabled && b.redis == nil {
		return nil, errors.New("login throttle requires a redis client")
	}

	sign, err := signer.New(b.config.Secret)
	if err != nil {
		return nil, err
	}

	hasher, err := password.New(b.config.Password)
	if err != nil {
		return nil, err
	}

	now := b.now
	if now == nil {
		now = time.Now
	}

	e := &Engine{
		config:   b.config,
		accounts: b.accounts,
		codes:    b.codes,
		notifier: b.notifier,
		hasher:   hasher,
		now:      now,
		sessions: session.NewCodec(sign, session.Options{
			CookieName: b.config.Session.CookieName,
			TTL:        b.config.Session.TTL,
			Secure:     b.config.Production,
			Now:        now,
		}),
		adminSessions: session.NewAdminCodec(sign, session.Options{
			CookieName: b.config.AdminSession.CookieName,
			TTL:        b.config.AdminSession.TTL,
			Secure:     b.config.Production,
			Now:        now,
		}),
	}

	if b.config.LoginThrottle.Enabled {
		e.throttle = newLoginLimiter(b.redis, b.config.LoginThrottle)
	}

	if b.config.Audit.Enabled {
		e.audit = newAuditDispatcher(b.config.Audit, b.sink)
	}

	// Hashed once at build time so login can burn a verification on unknown
	// emails and keep its timing profile close to the known-email path.
	decoy, err := hasher.Hash("classic-match-decoy-credential")
	if err != nil {
		return nil, err
	}
	e.decoyHash = decoy

	if b.config.Admin.Password != "" {
		adminHash, err := hasher.Hash(b.config.Admin.Password)
		if err != nil {
			return nil, err
		}
		e.adminHash = adminHash
	}

	b.built = true
	return e, nil
}
