package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/temporal"
)

func open(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRoundTrip(t *testing.T) {
	st := open(t)

	started := time.Date(2024, 1, 8, 9, 30, 0, 0, time.Local)
	baseline := 10
	tasks := []model.Task{{
		ID:               "t-1",
		ObjectiveID:      "obj-1",
		Title:            "Reading",
		ScheduledDate:    time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local),
		ScheduledTime:    "09:30",
		DurationMinutes:  60,
		CompletedMinutes: 12,
		Status:           model.TaskInProgress,
		Timer:            model.TimerState{Running: true, StartedAt: &started, BaselineMinutes: &baseline},
	}}
	if err := st.ReplaceTasks(tasks); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got := st.Tasks()
	if len(got) != 1 {
		t.Fatalf("loaded %d tasks", len(got))
	}
	if !temporal.SameDay(got[0].ScheduledDate, tasks[0].ScheduledDate) {
		t.Errorf("scheduled date %v round-tripped to %v", tasks[0].ScheduledDate, got[0].ScheduledDate)
	}
	if got[0].Timer.StartedAt == nil || !got[0].Timer.StartedAt.Equal(started) {
		t.Errorf("timer start %v round-tripped to %v", started, got[0].Timer.StartedAt)
	}
	if got[0].Timer.BaselineMinutes == nil || *got[0].Timer.BaselineMinutes != 10 {
		t.Errorf("baseline lost: %+v", got[0].Timer)
	}
}

func TestEmptyCollections(t *testing.T) {
	st := open(t)
	if tasks := st.Tasks(); len(tasks) != 0 {
		t.Errorf("fresh store has %d tasks", len(tasks))
	}
	if objectives := st.Objectives(); len(objectives) != 0 {
		t.Errorf("fresh store has %d objectives", len(objectives))
	}
}

func TestReplaceOverwritesWholeCollection(t *testing.T) {
	st := open(t)
	if err := st.ReplaceObjectives([]model.Objective{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := st.ReplaceObjectives([]model.Objective{{ID: "c"}}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got := st.Objectives()
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("collection not replaced wholesale: %+v", got)
	}
}

func TestReplaceAllWritesBothCollections(t *testing.T) {
	st := open(t)

	var seen []string
	st.Subscribe(func(name string) { seen = append(seen, name) })

	err := st.ReplaceAll(
		[]model.Objective{{ID: "obj-1", Title: "Guitar"}},
		[]model.Task{{ID: "t-1", ObjectiveID: "obj-1", Title: "Scales"}},
	)
	if err != nil {
		t.Fatalf("replace all: %v", err)
	}

	if got := st.Objectives(); len(got) != 1 || got[0].ID != "obj-1" {
		t.Errorf("objectives = %+v", got)
	}
	if got := st.Tasks(); len(got) != 1 || got[0].ID != "t-1" {
		t.Errorf("tasks = %+v", got)
	}
	if len(seen) != 2 || seen[0] != CollectionObjectives || seen[1] != CollectionTasks {
		t.Errorf("notifications = %v", seen)
	}
}

func TestReplaceAllFailureLeavesStoreUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.ReplaceObjectives([]model.Objective{{ID: "obj-keep"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	st.Close()

	if err := st.ReplaceAll([]model.Objective{{ID: "obj-new"}}, []model.Task{{ID: "t-new"}}); err == nil {
		t.Fatal("write on a closed store succeeded")
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })
	if got := reopened.Objectives(); len(got) != 1 || got[0].ID != "obj-keep" {
		t.Errorf("objectives changed by failed write: %+v", got)
	}
	if got := reopened.Tasks(); len(got) != 0 {
		t.Errorf("tasks written by failed write: %+v", got)
	}
}

func TestSubscribeNotifiesOnWrite(t *testing.T) {
	st := open(t)

	var seen []string
	unsubscribe := st.Subscribe(func(name string) { seen = append(seen, name) })

	st.ReplaceTasks(nil)
	st.ReplaceObjectives(nil)
	if len(seen) != 2 || seen[0] != CollectionTasks || seen[1] != CollectionObjectives {
		t.Errorf("notifications = %v", seen)
	}

	unsubscribe()
	st.ReplaceTasks(nil)
	if len(seen) != 2 {
		t.Errorf("notified after unsubscribe: %v", seen)
	}
}

func TestMalformedCollectionFallsBackToSample(t *testing.T) {
	st := open(t)
	if _, err := st.db.Exec(`INSERT INTO collections (name, data, updated_at) VALUES ('tasks', '{not json', '')`); err != nil {
		t.Fatalf("inject garbage: %v", err)
	}

	got := st.Tasks()
	_, sample := Sample(time.Now())
	if len(got) != len(sample) {
		t.Errorf("malformed collection yielded %d tasks, want the %d sample tasks", len(got), len(sample))
	}
}

func TestSeed(t *testing.T) {
	st := open(t)
	if err := st.Seed(time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(st.Objectives()) == 0 || len(st.Tasks()) == 0 {
		t.Errorf("seed left empty collections")
	}
}
