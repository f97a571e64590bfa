package usecase

import (
	"slices"
	"sync"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/model"
)

type EventType string

const (
	EventTasksFetched      EventType = "tasks.fetched"
	EventTaskAdded         EventType = "task.added"
	EventTaskUpdated       EventType = "task.updated"
	EventTaskDeleted       EventType = "task.deleted"
	EventFreelancersChange EventType = "freelancers.changed"
	EventRatesSaved        EventType = "rates.saved"
)

type Event struct {
	Type EventType `json:"type"`
	ID   string    `json:"id,omitempty"`
}

// CacheState is a copy of the cached task list at one point in time.
type CacheState struct {
	Tasks   []model.Task   `json:"tasks"`
	Filter  dto.TaskFilter `json:"filter"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

// TaskCache is the process-wide mirror of the last fetched task list. All
// usecases share one instance, and subscribers are told about every change.
type TaskCache struct {
	mu      sync.RWMutex
	tasks   []model.Task
	filter  dto.TaskFilter
	loading bool
	err     string

	subMu  sync.Mutex
	subs   map[int]chan Event
	nextID int
}

func NewTaskCache() *TaskCache {
	return &TaskCache{subs: make(map[int]chan Event)}
}

func (c *TaskCache) State() CacheState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheState{
		Tasks:   slices.Clone(c.tasks),
		Filter:  c.filter,
		Loading: c.loading,
		Error:   c.err,
	}
}

func (c *TaskCache) Tasks() []model.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.tasks)
}

func (c *TaskCache) setLoading(loading bool) {
	c.mu.Lock()
	c.loading = loading
	c.mu.Unlock()
}

func (c *TaskCache) setError(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
}

func (c *TaskCache) replace(tasks []model.Task, filter dto.TaskFilter) {
	c.mu.Lock()
	c.tasks = slices.Clone(tasks)
	c.filter = filter
	c.err = ""
	c.mu.Unlock()
	c.publish(Event{Type: EventTasksFetched})
}

func (c *TaskCache) prepend(task model.Task) {
	c.mu.Lock()
	c.tasks = append([]model.Task{task}, c.tasks...)
	c.mu.Unlock()
	c.publish(Event{Type: EventTaskAdded, ID: task.ID.String()})
}

func (c *TaskCache) replaceOne(task model.Task) {
	c.mu.Lock()
	for i := range c.tasks {
		if c.tasks[i].ID == task.ID {
			c.tasks[i] = task
			break
		}
	}
	c.mu.Unlock()
	c.publish(Event{Type: EventTaskUpdated, ID: task.ID.String()})
}

func (c *TaskCache) remove(id string) {
	c.mu.Lock()
	c.tasks = slices.DeleteFunc(c.tasks, func(t model.Task) bool {
		return t.ID.String() == id
	})
	c.mu.Unlock()
	c.publish(Event{Type: EventTaskDeleted, ID: id})
}

// Subscribe registers a listener. Events are dropped for listeners that fall
// behind; call the returned func to unsubscribe.
func (c *TaskCache) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	c.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
			close(ch)
		})
	}
}

func (c *TaskCache) publish(e Event) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
