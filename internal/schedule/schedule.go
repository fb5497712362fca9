// Package schedule resolves the fixed weekly workout plan and the rotating
// study-subject cycle. Everything here is derived from the calendar and the
// rotation index; nothing is persisted.
package schedule

import (
	"tatico/internal/models"
	"time"
)

// Template is one day of the fixed 7-day workout cycle. Exercise fields are
// free-form display strings taken verbatim from the plan.
type Template struct {
	Day              time.Weekday
	Title            string
	Focus            string
	Type             string
	DefaultExercises []models.Exercise
}

var subjects = []string{
	"Português",
	"Direito Penal",
	"Literatura",
	"Direito Constitucional",
	"Raciocínio Lógico",
	"Legislação Específica",
}

var workoutSchedule = [7]Template{
	{
		Day:   time.Sunday,
		Title: "Rest Day",
		Focus: "Recuperação Ativa / Mobilidade",
		Type:  models.WorkoutRest,
		DefaultExercises: []models.Exercise{
			{Name: "Alongamento / Mobilidade", Sets: "1", Reps: "20min", Weight: "0"},
			{Name: "Caminhada Leve", Sets: "1", Reps: "30min", Weight: "0"},
		},
	},
	{
		Day:   time.Monday,
		Title: "Treino A (Tração)",
		Focus: "Barra Fixa / Costas",
		Type:  models.WorkoutStrength,
		DefaultExercises: []models.Exercise{
			{Name: "Barra Fixa (Pronada)", Sets: "4", Reps: "Falha", Weight: "Corpo"},
			{Name: "Levantamento Terra", Sets: "3", Reps: "8-10", Weight: ""},
			{Name: "Remada Curvada", Sets: "3", Reps: "10-12", Weight: ""},
			{Name: "Rosca Direta", Sets: "3", Reps: "12", Weight: ""},
		},
	},
	{
		Day:   time.Tuesday,
		Title: "Cardio HIIT",
		Focus: "VO2 Max (Esteira)",
		Type:  models.WorkoutCardio,
		DefaultExercises: []models.Exercise{
			{Name: "Tiro de 1 min (Alta Intensidade)", Sets: "10", Reps: "1min", Weight: "Vel 14"},
			{Name: "Trote Recuperativo", Sets: "10", Reps: "1min", Weight: "Vel 8"},
		},
	},
	{
		Day:   time.Wednesday,
		Title: "Treino B (Empurrar)",
		Focus: "Agachamento / Flexão",
		Type:  models.WorkoutStrength,
		DefaultExercises: []models.Exercise{
			{Name: "Agachamento Livre", Sets: "4", Reps: "8-10", Weight: ""},
			{Name: "Flexão de Braço", Sets: "4", Reps: "Falha", Weight: "Corpo"},
			{Name: "Supino Reto/Halteres", Sets: "3", Reps: "10-12", Weight: ""},
			{Name: "Desenvolvimento Ombros", Sets: "3", Reps: "12", Weight: ""},
			{Name: "Abdominal Remador", Sets: "3", Reps: "20", Weight: "Corpo"},
		},
	},
	{
		Day:   time.Thursday,
		Title: "Corrida Ritmo",
		Focus: "Tempo Run (Resistência)",
		Type:  models.WorkoutRun,
		DefaultExercises: []models.Exercise{
			{Name: "Corrida 5km (Ritmo Constante)", Sets: "1", Reps: "1x", Weight: ""},
			{Name: "Educativos de Corrida", Sets: "1", Reps: "10min", Weight: ""},
		},
	},
	{
		Day:   time.Friday,
		Title: "Full Body",
		Focus: "Halteres / Funcional",
		Type:  models.WorkoutStrength,
		DefaultExercises: []models.Exercise{
			{Name: "Burpees", Sets: "3", Reps: "15", Weight: "Corpo"},
			{Name: "Kettlebell Swing", Sets: "3", Reps: "15", Weight: ""},
			{Name: "Afundo (Lunges)", Sets: "3", Reps: "12", Weight: ""},
			{Name: "Prancha Abdominal", Sets: "3", Reps: "1min", Weight: "Corpo"},
		},
	},
	{
		Day:   time.Saturday,
		Title: "Long Run / Simulado",
		Focus: "Resistência Aeróbica",
		Type:  models.WorkoutRun,
		DefaultExercises: []models.Exercise{
			{Name: "Corrida Longa (8-10km)", Sets: "1", Reps: "1x", Weight: ""},
		},
	},
}

// ForWeekday returns the workout template for the given weekday.
func ForWeekday(day time.Weekday) Template {
	return workoutSchedule[int(day)%len(workoutSchedule)]
}

// ForDate returns the workout template for the date's weekday.
func ForDate(t time.Time) Template {
	return ForWeekday(t.Weekday())
}

// Subject maps a rotation index onto the fixed subject cycle.
func Subject(index int) string {
	if index < 0 {
		index = 0
	}
	return subjects[index%len(subjects)]
}

// Subjects returns the fixed subject list in cycle order.
func Subjects() []string {
	out := make([]string, len(subjects))
	copy(out, subjects)
	return out
}
