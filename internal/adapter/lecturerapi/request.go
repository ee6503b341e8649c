package lecturerapi

import "github.com/heartmarshall/coursereview-backend/internal/domain"

// createLecturerRequest is the JSON body of POST {apiUrl}.
type createLecturerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department"`
}

func newCreateLecturerRequest(l domain.Lecturer) createLecturerRequest {
	return createLecturerRequest{
		Name:       l.Name,
		Email:      l.Email,
		Department: l.Department,
	}
}
