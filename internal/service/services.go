package service

import (
	"github.com/deppfellow/zombies/internal/lib/job"
	"github.com/deppfellow/zombies/internal/repository"
	"github.com/deppfellow/zombies/internal/server"
)

type Services struct {
	People *PeopleService
	Job    *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	people := NewPeopleService(repos.People, repos.Zombies, s.Metrics, s.Logger)

	// s.Job is nil unless obituaries are configured; keep the interface
	// nil too.
	if s.Job != nil {
		people.WithNotifier(s.Job)
	}

	return &Services{
		People: people,
		Job:    s.Job,
	}, nil
}
