package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/todo"
)

// Key prefixes and fixed keys. Everything is namespaced by feature; water
// intake is further keyed by calendar day.
const (
	KeyTodoState       = "todo:state"
	KeyFastActive      = "fasting:active"
	KeyFastHistory     = "fasting:history"
	KeyNotes           = "notes:list"
	KeyRecommendations = "recommendations:settings"
	waterKeyPrefix     = "water:"
	waterDayFormat     = "2006-01-02"
)

// Sentinel errors returned by the feature methods.
var (
	ErrNotFound     = errors.New("not found")
	ErrFastActive   = errors.New("a fast is already running")
	ErrNoActiveFast = errors.New("no fast is running")
)

// WaterKey returns the storage key for the given day's water intake.
func WaterKey(day time.Time) string {
	return waterKeyPrefix + day.Format(waterDayFormat)
}

// Store defines local persistence for state that outlives a session.
type Store interface {
	// === Key/value ===

	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Put(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)

	// === Fasting timer ===

	StartFast(ctx context.Context, goalHours int, now time.Time) (model.FastSession, error)
	StopFast(ctx context.Context, now time.Time) (model.FastSession, error)
	ActiveFast(ctx context.Context) (*model.FastSession, error)
	FastHistory(ctx context.Context) ([]model.FastSession, error)

	// === Water intake ===

	AddWater(ctx context.Context, ml int, now time.Time) (model.WaterIntake, error)
	WaterIntake(ctx context.Context, day time.Time) (model.WaterIntake, error)

	// === Notes ===

	AddNote(ctx context.Context, title, body string, now time.Time) (model.Note, error)
	UpdateNote(ctx context.Context, note model.Note, now time.Time) (model.Note, error)
	DeleteNote(ctx context.Context, id string) error
	Notes(ctx context.Context) ([]model.Note, error)

	// === Recommendation settings ===

	SaveRecommendationSettings(ctx context.Context, settings model.RecommendationSettings) error
	RecommendationSettings(ctx context.Context) (model.RecommendationSettings, error)

	// === Todo snapshot ===

	SaveTodoState(ctx context.Context, st todo.State) error
	LoadTodoState(ctx context.Context) (todo.State, bool, error)
	MirrorTodoState(ts *todo.Store, logger *zap.Logger) (stop func())

	Close() error
}

var _ Store = (*SQLiteStore)(nil)
