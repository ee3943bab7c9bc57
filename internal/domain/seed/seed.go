// Package seed loads the sample doctors and tasks a fresh clinic starts with.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/task"
)

type Repos struct {
	Doctors doctor.Repository
	Tasks   task.TaskRepository
}

// Result counts the records inserted by Run.
type Result struct {
	Doctors int `json:"doctors"`
	Tasks   int `json:"tasks"`
}

const day = 24 * time.Hour

func week(weekday, saturday, sunday doctor.Slot) doctor.Availability {
	return doctor.Availability{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    weekday,
		"saturday":  saturday,
		"sunday":    sunday,
	}
}

func slot(start, end string, available bool) doctor.Slot {
	return doctor.Slot{Start: start, End: end, Available: available}
}

func sampleDoctors(now time.Time) []*doctor.Doctor {
	docs := []*doctor.Doctor{
		{
			Name: "Dr. Sarah Johnson", Email: "sarah.johnson@clinic.com", Phone: "+1-555-0101",
			Specialization: "Cardiology", Department: "Internal Medicine", Experience: 8,
			Qualifications: []string{"MD", "Fellowship in Cardiology", "Board Certified"},
			Availability:   week(slot("09:00", "17:00", true), slot("10:00", "14:00", true), slot("10:00", "14:00", false)),
			Status:         doctor.StatusActive,
		},
		{
			Name: "Dr. Michael Chen", Email: "michael.chen@clinic.com", Phone: "+1-555-0102",
			Specialization: "Orthopedics", Department: "Surgery", Experience: 12,
			Qualifications: []string{"MD", "Fellowship in Orthopedic Surgery", "Board Certified"},
			Availability:   week(slot("08:00", "16:00", true), slot("09:00", "13:00", true), slot("09:00", "13:00", false)),
			Status:         doctor.StatusActive,
		},
		{
			Name: "Dr. Emily Rodriguez", Email: "emily.rodriguez@clinic.com", Phone: "+1-555-0103",
			Specialization: "Pediatrics", Department: "Pediatrics", Experience: 6,
			Qualifications: []string{"MD", "Residency in Pediatrics", "Board Certified"},
			Availability:   week(slot("09:00", "17:00", true), slot("10:00", "15:00", true), slot("10:00", "15:00", false)),
			Status:         doctor.StatusActive,
		},
		{
			Name: "Dr. James Wilson", Email: "james.wilson@clinic.com", Phone: "+1-555-0104",
			Specialization: "Neurology", Department: "Neurology", Experience: 15,
			Qualifications: []string{"MD", "PhD", "Fellowship in Neurology", "Board Certified"},
			Availability:   week(slot("08:30", "16:30", true), slot("09:00", "13:00", false), slot("09:00", "13:00", false)),
			Status:         doctor.StatusOnLeave,
		},
	}
	// Friday hours are shorter than the rest of the week.
	fridays := []doctor.Slot{
		slot("09:00", "15:00", true),
		slot("08:00", "14:00", true),
		slot("09:00", "17:00", true),
		slot("08:30", "14:30", true),
	}
	for i, d := range docs {
		d.Availability["friday"] = fridays[i]
		d.CreatedAt = now
		d.UpdatedAt = now
	}
	return docs
}

func sampleTasks(now time.Time, owner *doctor.Doctor) []*task.Task {
	due := func(d time.Duration) string { return now.Add(d).Format(time.RFC3339) }
	tasks := []*task.Task{
		{Title: "Review patient charts for tomorrow", Description: "Check all scheduled appointments and review patient histories",
			DueDate: due(day), CreatedAt: now},
		{Title: "Update medication dosages", Description: "Review and update medication dosages for chronic patients",
			DueDate: due(2 * day), CreatedAt: now},
		{Title: "Prepare presentation for conference", Description: "Create slides for the upcoming medical conference presentation",
			DueDate: due(7 * day), Completed: true, CreatedAt: now.Add(-2 * day)},
		{Title: "Follow up with discharged patients", Description: "Call patients who were discharged this week to check on their recovery",
			DueDate: due(-day), CreatedAt: now.Add(-3 * day)},
		{Title: "Update clinic protocols", Description: "Review and update standard operating procedures for the clinic",
			DueDate: due(3 * day), CreatedAt: now},
	}
	if owner != nil {
		for _, t := range tasks {
			id := owner.ID
			t.DoctorID = &id
		}
	}
	return tasks
}

// Run inserts the sample doctors and tasks. Each collection is only seeded
// when it is empty, so running it again changes nothing. Tasks are assigned
// to the first doctor in the collection, if any.
func Run(ctx context.Context, repos Repos, now time.Time) (*Result, error) {
	res := &Result{}

	doctors, err := repos.Doctors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	if len(doctors) == 0 {
		for _, d := range sampleDoctors(now) {
			if err := repos.Doctors.Create(ctx, d); err != nil {
				return res, fmt.Errorf("seed doctor %q: %w", d.Name, err)
			}
			doctors = append(doctors, d)
			res.Doctors++
		}
	}

	tasks, err := repos.Tasks.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list tasks: %w", err)
	}
	if len(tasks) == 0 {
		var owner *doctor.Doctor
		if len(doctors) > 0 {
			owner = doctors[0]
		}
		for _, t := range sampleTasks(now, owner) {
			if err := repos.Tasks.Create(ctx, t); err != nil {
				return res, fmt.Errorf("seed task %q: %w", t.Title, err)
			}
			res.Tasks++
		}
	}
	return res, nil
}
