package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"appealapp/src/dto"
	"appealapp/src/models"
	"appealapp/src/repositories"
	"appealapp/src/storage"
	"appealapp/src/validation"
)

// UploadPathPrefix is the URL prefix under which stored attachments are
// served back.
const UploadPathPrefix = "/uploads/"

type ComplaintService struct {
	repos *repositories.Repos
	store storage.Store
}

func NewComplaintService(repos *repositories.Repos, store storage.Store) *ComplaintService {
	return &ComplaintService{repos: repos, store: store}
}

// validate re-checks the submitted form with the shared rule set. The
// client already ran these rules; this guards against a bypassed or buggy
// client. Returns nil when the form is acceptable.
func validate(input dto.CreateComplaintDTO, file *multipart.FileHeader, fileType string) validation.Errors {
	errs := validation.Errors{}

	kind := models.ComplaintKind(input.UserType)
	if kind != models.ComplaintKindIndividual && kind != models.ComplaintKindOrganization {
		errs["userType"] = validation.MsgRequired
	}

	// The required set follows the flow: a private person identifies by
	// name and phone, an organization by company name and INN.
	required := map[string]string{
		"email":       input.Email,
		"description": input.Description,
	}
	switch kind {
	case models.ComplaintKindIndividual:
		required["name"] = input.Name
		required["phone"] = input.Phone
	case models.ComplaintKindOrganization:
		required["companyName"] = input.CompanyName
		required["inn"] = input.INN
	}
	for name, value := range required {
		if msg := validation.Field(name, value); msg != "" {
			errs[name] = msg
		}
	}

	// Optional fields are still format-checked when present.
	optional := map[string]string{
		"inn":      input.INN,
		"phone":    input.Phone,
		"carPlate": input.CarPlate,
	}
	for name, value := range optional {
		if _, ok := required[name]; ok || value == "" {
			continue
		}
		if msg := validation.Field(name, value); msg != "" {
			errs[name] = msg
		}
	}

	if msg := validation.Consent(input.Agreement); msg != "" {
		errs["agreement"] = msg
	}
	if msg := validation.Consent(input.Terms); msg != "" {
		errs["terms"] = msg
	}

	if file != nil {
		if msg := validation.Attachment(file.Filename, file.Size, fileType); msg != "" {
			errs["photo"] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// sniffFileType reads the upload's first bytes and detects its real
// content type, ignoring the client-declared header.
func sniffFileType(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

// Create validates the submission, stores the attachment (if any) under a
// collision-free name and persists the complaint with status pending. A
// persistence failure removes the stored object so no partial record is
// left behind.
func (s *ComplaintService) Create(ctx context.Context, userID uint, input dto.CreateComplaintDTO, file *multipart.FileHeader) (*models.Complaint, error) {
	var fileType string
	if file != nil {
		var err error
		fileType, err = sniffFileType(file)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
	}

	if errs := validate(input, file, fileType); errs != nil {
		return nil, errs
	}

	photo := ""
	objectName := ""
	if file != nil {
		objectName = storage.ObjectName(file.Filename)
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		err = s.store.Put(ctx, objectName, fileType, src, file.Size)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("store attachment: %w", err)
		}
		photo = UploadPathPrefix + objectName
	}

	complaint := &models.Complaint{
		Kind:             models.ComplaintKind(input.UserType),
		Name:             input.Name,
		Address:          input.Address,
		Phone:            input.Phone,
		Email:            input.Email,
		INN:              input.INN,
		CompanyName:      input.CompanyName,
		ContractNumber:   input.ContractNumber,
		ResolutionNumber: input.ResolutionNumber,
		ResolutionDate:   input.ResolutionDate,
		IssuingAuthority: input.IssuingAuthority,
		ReceivedDate:     input.ReceivedDate,
		ReceivedDetails:  input.ReceivedDetails,
		ViolationDate:    input.ViolationDate,
		ViolationTime:    input.ViolationTime,
		ViolationAddress: input.ViolationAddress,
		Description:      input.Description,
		CarModel:         input.CarModel,
		CarPlate:         input.CarPlate,
		DetectionMethod:  input.DetectionMethod,
		Photo:            photo,
		Agreement:        input.Agreement,
		Terms:            input.Terms,
		Status:           models.ComplaintStatusPending,
		UserID:           userID,
	}

	if err := s.repos.Complaint.Create(complaint); err != nil {
		if objectName != "" {
			if rmErr := s.store.Remove(ctx, objectName); rmErr != nil {
				return nil, fmt.Errorf("persist complaint: %w (orphan object %s: %v)", err, objectName, rmErr)
			}
		}
		return nil, fmt.Errorf("persist complaint: %w", err)
	}

	return complaint, nil
}

// GetUserComplaints returns the caller's complaints, newest first.
func (s *ComplaintService) GetUserComplaints(userID uint) ([]models.Complaint, error) {
	return s.repos.Complaint.FindByUserID(userID)
}

// GetAllComplaints returns every complaint, newest first (admin review).
func (s *ComplaintService) GetAllComplaints() ([]models.Complaint, error) {
	return s.repos.Complaint.FindAll()
}

// UpdateStatus applies an admin-driven status transition and records it in
// the complaint's history.
func (s *ComplaintService) UpdateStatus(id uint, status string) (*models.Complaint, error) {
	next := models.ComplaintStatus(status)
	switch next {
	case models.ComplaintStatusPending, models.ComplaintStatusProcessing,
		models.ComplaintStatusResolved, models.ComplaintStatusRejected:
	default:
		return nil, fmt.Errorf("unknown status %q", status)
	}

	complaint, err := s.repos.Complaint.FindByID(id)
	if err != nil {
		return nil, err
	}

	var history []models.StatusTransition
	if len(complaint.History) > 0 {
		if err := json.Unmarshal(complaint.History, &history); err != nil {
			return nil, fmt.Errorf("decode status history: %w", err)
		}
	}
	history = append(history, models.StatusTransition{
		From: complaint.Status,
		To:   next,
		At:   time.Now().UTC(),
	})
	raw, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}

	complaint.Status = next
	complaint.History = raw
	if err := s.repos.Complaint.Update(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}
