// Package visitors records privacy-conscious page visits: client IPs are
// salted and hashed before storage and Do Not Track is honoured.
package visitors

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ahmed-3del/portfolio/internal/store"
)

// Visit is one recorded page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type Stats struct {
	TotalVisitors    int64   `json:"total_visitors"`
	UniqueVisitors   int64   `json:"unique_visitors"`
	VisitorsToday    int64   `json:"visitors_today"`
	VisitorsThisWeek int64   `json:"visitors_this_week"`
	RecentVisitors   []Visit `json:"recent_visitors"`
}

// untracked prefixes are never recorded.
var untracked = []string{"/static/", "/admin", "/live", "/favicon", "/privacy", "/healthz"}

type Recorder struct {
	db     *store.DB
	salt   string
	logger *zap.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// NewRecorder generates a fresh salt, so hashes are only stable for the
// lifetime of the process.
func NewRecorder(db *store.DB, logger *zap.Logger) (*Recorder, error) {
	salt, err := RandomToken()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{db: db, salt: salt, logger: logger, now: time.Now}, nil
}

// RandomToken returns 32 random bytes, hex encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns a truncated salted hash, consistent per IP.
func (r *Recorder) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + r.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (r *Recorder) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		r.HashIP(ip), userAgent, path, r.now().UTC())
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// Middleware records page views in the background.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || !tracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			if err := r.Record(context.Background(), ip, ua, path); err != nil {
				r.logger.Warn("visit not recorded", zap.Error(err))
			}
		}()
		c.Next()
	}
}

func tracked(path string) bool {
	for _, p := range untracked {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// Wait blocks until background writes have finished.
func (r *Recorder) Wait() { r.wg.Wait() }

// Cleanup deletes visits older than retention and returns how many were removed.
func (r *Recorder) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := r.now().UTC().Add(-retention)
	res, err := r.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning up visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		r.logger.Info("privacy cleanup removed old visitor records", zap.Int64("rows", n))
	}
	return n, nil
}

func (r *Recorder) Stats(ctx context.Context, recent int) (*Stats, error) {
	now := r.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	week := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT hashed_ip),
			COALESCE(SUM(CASE WHEN timestamp >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN timestamp >= ? THEN 1 ELSE 0 END), 0)
		FROM visitors`, today, week).
		Scan(&stats.TotalVisitors, &stats.UniqueVisitors, &stats.VisitorsToday, &stats.VisitorsThisWeek)
	if err != nil {
		return nil, fmt.Errorf("counting visitors: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT ?`, recent)
	if err != nil {
		return nil, fmt.Errorf("listing visitors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		stats.RecentVisitors = append(stats.RecentVisitors, v)
	}
	return stats, rows.Err()
}
