package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"formku_backend/internals/features/statistics/dto"
	"formku_backend/internals/features/statistics/live"
)

// Rebuilder mengambil data penuh satu form untuk rebuild snapshot dari nol
// (biasanya lewat GET /api/statistics/:form_id).
type Rebuilder func(ctx context.Context) (*dto.StatisticsSnapshot, error)

// DashboardSession: satu sesi dashboard hasil — memegang satu Aggregator dan
// satu kanal live. Aturannya persis alur dashboard:
//   - connected      → rebuild penuh (sinkron dengan server)
//   - statistics_update → patch in place lewat MergeIncremental
//
// Merge yang mendarat setelah rebuild lebih baru ditolak oleh guard snapshot
// di Aggregator, bukan di sini.
type DashboardSession struct {
	agg     *Aggregator
	channel *live.Channel
	rebuild Rebuilder
}

func NewDashboardSession(transport live.Transport, formID uuid.UUID, rebuild Rebuilder) *DashboardSession {
	return &DashboardSession{
		agg:     NewAggregator(),
		channel: live.NewChannel(transport, formID.String(), live.DefaultBackoff),
		rebuild: rebuild,
	}
}

// Snapshot: pandangan terbaru (bisa nil sebelum rebuild pertama).
func (s *DashboardSession) Snapshot() *dto.StatisticsSnapshot {
	return s.agg.Current()
}

// Run membuka kanal dan memproses event sampai ctx dibatalkan. Blocking;
// jalankan di goroutine milik pemanggil.
func (s *DashboardSession) Run(ctx context.Context) {
	s.channel.Open(ctx)
	defer s.channel.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.channel.Events():
			if !ok {
				return
			}
			s.handle(ctx, event)
		}
	}
}

func (s *DashboardSession) handle(ctx context.Context, event live.Event) {
	switch event.Type {
	case live.EventConnected:
		// setiap (re)konek: samakan diri dengan server dari nol
		snapshot, err := s.rebuild(ctx)
		if err != nil {
			// non-fatal: snapshot lama tetap dipakai sampai rebuild berikutnya
			log.Printf("[WARN] rebuild snapshot gagal: %v", err)
			return
		}
		s.agg.Install(snapshot)

	case live.EventStatisticsUpdate:
		if event.Statistics == nil {
			return
		}
		questionID, err := uuid.Parse(event.QuestionID)
		if err != nil {
			return
		}
		s.agg.MergeIncremental(s.agg.Current(), questionID, *event.Statistics, event.RespondentCount)
	}
}
