package tracker

import (
	"context"
	"sort"
	"sync"

	"github.com/verte-zerg/keydrill/internal/model"
)

// FreePractice is the lesson id used for sessions outside any lesson.
const FreePractice = "practice"

// LessonProgress summarises every attempt made in one lesson.
type LessonProgress struct {
	LessonID        string
	Attempts        int
	Results         []model.TaskResult
	CompletedTasks  []string
	BestWPM         float64
	AverageAccuracy float64
}

// ProgressTracker records pass/fail and best WPM per lesson.
type ProgressTracker struct {
	mu      sync.Mutex
	lessons map[string]*lessonState
}

type lessonState struct {
	results   []model.TaskResult
	completed map[string]struct{}
	best      float64
	accSum    float64
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{lessons: map[string]*lessonState{}}
}

func (p *ProgressTracker) Record(_ context.Context, o Outcome) error {
	id := o.LessonID
	if id == "" {
		id = FreePractice
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.lessons[id]
	if !ok {
		st = &lessonState{completed: map[string]struct{}{}}
		p.lessons[id] = st
	}
	st.results = append(st.results, o.Result)
	st.accSum += o.Result.Accuracy
	if o.Result.WPM > st.best {
		st.best = o.Result.WPM
	}
	if o.Result.Passed {
		st.completed[o.Result.TaskID] = struct{}{}
	}
	return nil
}

// Lesson reports progress for id.
func (p *ProgressTracker) Lesson(id string) (LessonProgress, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.lessons[id]
	if !ok {
		return LessonProgress{}, false
	}
	completed := make([]string, 0, len(st.completed))
	for task := range st.completed {
		completed = append(completed, task)
	}
	sort.Strings(completed)
	return LessonProgress{
		LessonID:        id,
		Attempts:        len(st.results),
		Results:         append([]model.TaskResult(nil), st.results...),
		CompletedTasks:  completed,
		BestWPM:         st.best,
		AverageAccuracy: st.accSum / float64(len(st.results)),
	}, true
}

// Passed reports whether taskID has been passed at least once in the lesson.
func (p *ProgressTracker) Passed(lessonID, taskID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.lessons[lessonID]
	if !ok {
		return false
	}
	_, ok = st.completed[taskID]
	return ok
}

// Lessons lists known lesson ids in sorted order.
func (p *ProgressTracker) Lessons() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.lessons))
	for id := range p.lessons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
