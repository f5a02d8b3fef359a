package services

import (
	"appealapp/src/repositories"
	"appealapp/src/storage"
)

type Services struct {
	User      *UserService
	Complaint *ComplaintService
}

func New(repos *repositories.Repos, store storage.Store) *Services {
	return &Services{
		User:      NewUserService(repos),
		Complaint: NewComplaintService(repos, store),
	}
}
