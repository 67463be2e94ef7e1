// Package influx exports per-game action statistics to InfluxDB, falling
// back to a gzip line-protocol file when the server is unreachable.
package influx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/framelog/slp/pkg/core"
)

const (
	// PerformanceBucket receives batch throughput points.
	PerformanceBucket = "slpscan_performance"

	measurementActions = "actions"
	measurementBatch   = "batch"
)

// Manager handles InfluxDB connections and writes.
type Manager struct {
	Client       influxdb2.Client
	Writers      map[string]influxdb2_api.WriteAPI
	BackupWriter *gzip.Writer
	IsValid      bool
	BucketNames  []string
	Logger       zerolog.Logger
	BackupPath   string

	backupFile *os.File
}

// NewManager creates a new InfluxDB manager. The action bucket comes from
// influx.bucket.
func NewManager(log zerolog.Logger, backupPath string) *Manager {
	return &Manager{
		Writers:     make(map[string]influxdb2_api.WriteAPI),
		BucketNames: []string{ActionBucket(), PerformanceBucket},
		Logger:      log,
		BackupPath:  backupPath,
	}
}

// ActionBucket is the configured bucket for action statistics.
func ActionBucket() string {
	return viper.GetString("influx.bucket")
}

// Connect establishes a connection to InfluxDB, or opens the backup file
// when the server does not answer.
func (m *Manager) Connect() error {
	if !viper.GetBool("influx.enabled") {
		return errors.New("influx.enabled is false")
	}

	m.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf(
			"%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port"),
		),
		viper.GetString("influx.token"),
		influxdb2.DefaultOptions().
			SetBatchSize(2500).
			SetFlushInterval(1000),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	running, err := m.Client.Ping(ctx)
	if err != nil || !running {
		m.IsValid = false
		if m.BackupWriter == nil {
			m.Logger.Info().Str("backupPath", m.BackupPath).
				Msg("Failed to reach InfluxDB, writing to backup file")
			file, err := os.OpenFile(m.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("error creating backup file: %w", err)
			}
			m.backupFile = file
			m.BackupWriter = gzip.NewWriter(file)
		}
		m.Logger.Warn().Msg("InfluxDB client failed to initialize, using backup writer")
		return nil
	}

	m.IsValid = true
	if err := m.setupOrganizationAndBuckets(ctx); err != nil {
		return err
	}
	m.CreateWriters()
	m.Logger.Info().Msg("InfluxDB client initialized")
	return nil
}

func (m *Manager) setupOrganizationAndBuckets(ctx context.Context) error {
	orgName := viper.GetString("influx.org")

	influxOrg, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Info().Str("org", orgName).Msg("Organization not found, creating")
		influxOrg, err = m.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			m.Logger.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	// ensure buckets exist with 90 day retention
	for _, bucket := range m.BucketNames {
		if _, err := m.Client.BucketsAPI().FindBucketByName(ctx, bucket); err == nil {
			continue
		}
		m.Logger.Info().Str("bucket", bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = m.Client.BucketsAPI().CreateBucketWithName(ctx, influxOrg, bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 90, // 90 days
		})
		if err != nil {
			m.Logger.Error().Err(err).Str("bucket", bucket).Msg("Error creating bucket")
			return err
		}
	}
	return nil
}

// CreateWriters creates write APIs for all configured buckets.
func (m *Manager) CreateWriters() {
	orgName := viper.GetString("influx.org")
	for _, bucket := range m.BucketNames {
		m.Writers[bucket] = m.Client.WriteAPI(orgName, bucket)

		go func(bucketName string, errorsCh <-chan error) {
			for writeErr := range errorsCh {
				m.Logger.Error().Err(writeErr).Str("bucket", bucketName).
					Msg("Error sending data to InfluxDB")
			}
		}(bucket, m.Writers[bucket].Errors())
	}
	m.Logger.Debug().Msg("InfluxDB writers initialized")
}

// WritePoint writes a point to InfluxDB or the backup file.
func (m *Manager) WritePoint(ctx context.Context, bucket string, point *influxdb2_write.Point) error {
	if m.IsValid {
		w, ok := m.Writers[bucket]
		if !ok {
			return fmt.Errorf("influxDB bucket '%s' not registered", bucket)
		}
		w.WritePoint(point)
		return nil
	}

	if m.BackupWriter == nil {
		return errors.New("influxDB client not initialized and backup writer not available")
	}
	line := strings.TrimSuffix(influxdb2_write.PointToLineProtocol(point, time.Nanosecond), "\n")
	if _, err := m.BackupWriter.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// RecordGame writes the action statistics of one game.
func (m *Manager) RecordGame(ctx context.Context, s *core.GameSummary, actions map[core.Slot][]core.Action) error {
	ts := time.Now()
	if !s.StartAt.IsNull() {
		ts = s.StartAt.Time()
	}
	bucket := ActionBucket()
	for _, slot := range sortedSlots(actions) {
		for _, p := range ActionPoints(s, slot, actions[slot], ts) {
			if err := m.WritePoint(ctx, bucket, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordBatch writes throughput of one batch run.
func (m *Manager) RecordBatch(ctx context.Context, files, failed int, elapsed time.Duration) error {
	p := influxdb2_write.NewPointWithMeasurement(measurementBatch).
		AddField("files", files).
		AddField("failed", failed).
		AddField("seconds", elapsed.Seconds()).
		SetTime(time.Now())
	return m.WritePoint(ctx, PerformanceBucket, p)
}

// Close flushes pending writes and closes the client and backup file.
func (m *Manager) Close() error {
	for _, w := range m.Writers {
		w.Flush()
	}
	if m.Client != nil {
		m.Client.Close()
	}
	var errs []error
	if m.BackupWriter != nil {
		errs = append(errs, m.BackupWriter.Close())
		m.BackupWriter = nil
	}
	if m.backupFile != nil {
		errs = append(errs, m.backupFile.Close())
		m.backupFile = nil
	}
	return errors.Join(errs...)
}

// ActionPoints aggregates the actions of one slot into a point per kind,
// carrying the count and mean length in frames.
func ActionPoints(s *core.GameSummary, slot core.Slot, actions []core.Action, ts time.Time) []*influxdb2_write.Point {
	type agg struct{ count, frames int }
	byKind := make(map[core.ActionKind]*agg)
	for _, a := range actions {
		g := byKind[a.Kind]
		if g == nil {
			g = &agg{}
			byKind[a.Kind] = g
		}
		g.count++
		g.frames += a.Len()
	}

	kinds := make([]core.ActionKind, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	character := ""
	for _, p := range s.Players {
		if p.Slot == slot {
			character = p.Character.String()
		}
	}

	points := make([]*influxdb2_write.Point, 0, len(kinds))
	for _, k := range kinds {
		g := byKind[k]
		points = append(points, influxdb2_write.NewPointWithMeasurement(measurementActions).
			AddTag("game", strconv.FormatUint(uint64(s.ID), 10)).
			AddTag("slot", strconv.Itoa(int(slot))).
			AddTag("character", character).
			AddTag("stage", s.Stage.String()).
			AddTag("kind", k.String()).
			AddField("count", g.count).
			AddField("meanLength", float64(g.frames)/float64(g.count)).
			SetTime(ts))
	}
	return points
}

func sortedSlots(actions map[core.Slot][]core.Action) []core.Slot {
	slots := make([]core.Slot, 0, len(actions))
	for s := range actions {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}
