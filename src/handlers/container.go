package handlers

import (
	"appealapp/src/services"
	"appealapp/src/storage"
)

type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Complaint  *ComplaintHandler
	Attachment *AttachmentHandler
}

func New(svcs *services.Services, store storage.Store) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svcs.User),
		User:       NewUserHandler(svcs.User),
		Complaint:  NewComplaintHandler(svcs.Complaint),
		Attachment: NewAttachmentHandler(store),
	}
}
