package dto

// CreateComplaintDTO binds the multipart fields of a complaint submission.
// Required-ness is not enforced by binding tags: the service re-validates
// the whole form with the shared rule set so the response can list every
// failing field at once.
type CreateComplaintDTO struct {
	UserType string `form:"userType"`

	Name    string `form:"name"`
	Address string `form:"address"`
	Phone   string `form:"phone"`
	Email   string `form:"email"`

	INN            string `form:"inn"`
	CompanyName    string `form:"companyName"`
	ContractNumber string `form:"contractNumber"`

	ResolutionNumber string `form:"resolutionNumber"`
	ResolutionDate   string `form:"resolutionDate"`
	IssuingAuthority string `form:"issuingAuthority"`
	ReceivedDate     string `form:"receivedDate"`
	ReceivedDetails  string `form:"receivedDetails"`

	ViolationDate    string `form:"violationDate"`
	ViolationTime    string `form:"violationTime"`
	ViolationAddress string `form:"violationAddress"`
	Description      string `form:"description"`

	CarModel        string `form:"carModel"`
	CarPlate        string `form:"carPlate"`
	DetectionMethod string `form:"detectionMethod"`

	Agreement bool `form:"agreement"`
	Terms     bool `form:"terms"`
}

type UpdateComplaintStatusDTO struct {
	Status string `json:"status" binding:"required"`
}
