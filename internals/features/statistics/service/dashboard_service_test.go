package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"formku_backend/internals/features/statistics/dto"
	"formku_backend/internals/features/statistics/live"
)

// scriptedStream memutar daftar event lalu menggantung sampai ditutup.
type scriptedStream struct {
	events chan live.Event
	once   sync.Once
	closed chan struct{}
}

func newScriptedStream(events ...live.Event) *scriptedStream {
	ch := make(chan live.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	return &scriptedStream{events: ch, closed: make(chan struct{})}
}

func (s *scriptedStream) Next() (live.Event, error) {
	select {
	case ev := <-s.events:
		return ev, nil
	case <-s.closed:
		return live.Event{}, io.EOF
	}
}

func (s *scriptedStream) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

type scriptedTransport struct {
	stream *scriptedStream
}

func (t *scriptedTransport) Connect(context.Context, string) (live.EventStream, error) {
	return t.stream, nil
}

func waitForSnapshot(t *testing.T, session *DashboardSession, check func(*dto.StatisticsSnapshot) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := session.Snapshot(); snap != nil && check(snap) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("snapshot tidak pernah mencapai kondisi yang diharapkan: %+v", session.Snapshot())
}

func TestDashboardSessionRebuildsOnConnectedAndMergesUpdates(t *testing.T) {
	formID := uuid.New()
	questionID := uuid.New()

	base := &dto.StatisticsSnapshot{
		FormUUID:         formID,
		TotalRespondents: 1,
		TotalQuestions:   1,
		Questions: []dto.QuestionStatistic{
			{SectionUUID: questionID, Kind: dto.StatKindText, Total: 1},
		},
	}

	updated := dto.QuestionStatistic{SectionUUID: questionID, Kind: dto.StatKindText, Total: 2}
	transport := &scriptedTransport{stream: newScriptedStream(
		live.Event{Type: live.EventConnected},
		live.Event{
			Type:            live.EventStatisticsUpdate,
			QuestionID:      questionID.String(),
			Statistics:      &updated,
			RespondentCount: 2,
		},
	)}

	session := NewDashboardSession(transport, formID, func(context.Context) (*dto.StatisticsSnapshot, error) {
		return base, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go session.Run(ctx)

	waitForSnapshot(t, session, func(s *dto.StatisticsSnapshot) bool {
		return s.TotalRespondents == 2 && s.Questions[0].Total == 2
	})
}

func TestDashboardSessionIgnoresUpdateForUnknownQuestion(t *testing.T) {
	formID := uuid.New()
	questionID := uuid.New()

	base := &dto.StatisticsSnapshot{
		FormUUID:         formID,
		TotalRespondents: 3,
		TotalQuestions:   1,
		Questions: []dto.QuestionStatistic{
			{SectionUUID: questionID, Kind: dto.StatKindText, Total: 3},
		},
	}

	strayStat := dto.QuestionStatistic{SectionUUID: uuid.New(), Total: 99}
	transport := &scriptedTransport{stream: newScriptedStream(
		live.Event{Type: live.EventConnected},
		live.Event{
			Type:            live.EventStatisticsUpdate,
			QuestionID:      strayStat.SectionUUID.String(),
			Statistics:      &strayStat,
			RespondentCount: 99,
		},
	)}

	session := NewDashboardSession(transport, formID, func(context.Context) (*dto.StatisticsSnapshot, error) {
		return base, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go session.Run(ctx)

	waitForSnapshot(t, session, func(s *dto.StatisticsSnapshot) bool {
		return s.TotalRespondents == 3
	})

	// beri waktu event nyasar diproses; snapshot tidak boleh berubah
	time.Sleep(50 * time.Millisecond)
	snap := session.Snapshot()
	if snap.TotalRespondents != 3 || len(snap.Questions) != 1 || snap.Questions[0].Total != 3 {
		t.Fatalf("update untuk pertanyaan tak dikenal mengubah snapshot: %+v", snap)
	}
}
