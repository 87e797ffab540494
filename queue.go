package main

import (
	"sync"
)

type Queue struct {
	items []Job
	lock  sync.Mutex
}

func NewQueue(sqlite *Sqlite) (Queue, error) {
	jobs, err := sqlite.GetJobs()
	if err != nil {
		return Queue{}, err
	}

	return Queue{
		items: jobs,
	}, nil
}

func (q *Queue) Items() []Job {
	q.lock.Lock()
	defer q.lock.Unlock()

	items := make([]Job, len(q.items))
	copy(items, q.items)
	return items
}

// Enqueue persists the job when it has no ID yet and puts it at the
// back of the queue.
func (q *Queue) Enqueue(item Job) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	if item.ID == 0 {
		if _, err := sqlite.InsertJob(&item); err != nil {
			return err
		}
	}

	q.items = append(q.items, item)
	return nil
}

func (q *Queue) Dequeue() (Job, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if len(q.items) == 0 {
		return Job{}, false
	}

	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

func (q *Queue) RemoveByID(id int64) (Job, bool, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	for i, item := range q.items {
		if item.ID == id {
			if err := sqlite.DeleteJobByID(item.ID); err != nil {
				return Job{}, false, err
			}

			q.items = append(q.items[:i], q.items[i+1:]...)
			return item, true, nil
		}
	}

	return Job{}, false, nil
}
