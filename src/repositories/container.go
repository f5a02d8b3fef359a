package repositories

type Repos struct {
	User      UserRepo
	Complaint ComplaintRepo
}

func New() *Repos {
	return &Repos{
		User:      &DBUserRepo{},
		Complaint: &DBComplaintRepo{},
	}
}
