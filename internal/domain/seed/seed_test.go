package seed

import (
	"context"
	"testing"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/task"
	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newRepos() Repos {
	s := store.NewMemoryStore()
	return Repos{Doctors: doctor.NewRepoStore(s), Tasks: task.NewTaskRepoStore(s)}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()

	res, err := Run(ctx, repos, now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Doctors != 4 || res.Tasks != 5 {
		t.Errorf("expected 4 doctors and 5 tasks, got %+v", res)
	}

	doctors, _ := repos.Doctors.List(ctx)
	if doctor.CountActive(doctors) != 3 {
		t.Errorf("expected 3 active doctors, got %d", doctor.CountActive(doctors))
	}
	if doctors[0].Availability["friday"].End != "15:00" || doctors[0].AvailableOn(time.Sunday) {
		t.Errorf("unexpected availability: %+v", doctors[0].Availability)
	}

	tasks, _ := repos.Tasks.List(ctx)
	st := task.ComputeStats(tasks, now)
	if st.Completed != 1 || st.Pending != 4 || st.Overdue != 1 {
		t.Errorf("unexpected task stats: %+v", st)
	}
	for _, tk := range tasks {
		if tk.DoctorID == nil || *tk.DoctorID != doctors[0].ID {
			t.Errorf("expected task %q assigned to the first doctor", tk.Title)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	if _, err := Run(ctx, repos, now); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := Run(ctx, repos, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Doctors != 0 || res.Tasks != 0 {
		t.Errorf("expected nothing inserted on second run, got %+v", res)
	}
	doctors, _ := repos.Doctors.List(ctx)
	tasks, _ := repos.Tasks.List(ctx)
	if len(doctors) != 4 || len(tasks) != 5 {
		t.Errorf("expected 4 doctors and 5 tasks, got %d and %d", len(doctors), len(tasks))
	}
}

func TestRun_KeepsExistingDoctors(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	own := &doctor.Doctor{Name: "Dr. Own", Email: "own@clinic.test", Specialization: "General", Status: doctor.StatusActive}
	if err := repos.Doctors.Create(ctx, own); err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := Run(ctx, repos, now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Doctors != 0 || res.Tasks != 5 {
		t.Errorf("expected only tasks seeded, got %+v", res)
	}
	tasks, _ := repos.Tasks.List(ctx)
	if *tasks[0].DoctorID != own.ID {
		t.Errorf("expected tasks assigned to the existing doctor")
	}
}

func TestSampleDoctorsAreValid(t *testing.T) {
	svc := doctor.NewService(doctor.NewRepoStore(store.NewMemoryStore()))
	for _, d := range sampleDoctors(now) {
		if err := svc.CreateDoctor(context.Background(), d); err != nil {
			t.Errorf("sample doctor %q rejected: %v", d.Name, err)
		}
	}
}
