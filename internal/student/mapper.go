package student

func ToEntity(req CreateStudentRequest) *Student {
	return &Student{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	}
}

func ToResponse(s Student) StudentResponse {
	return StudentResponse{
		ID:    s.ID,
		Name:  s.Name,
		Email: s.Email,
		Age:   s.Age,
	}
}

func ToResponses(students []Student) []StudentResponse {
	out := make([]StudentResponse, len(students))
	for i, s := range students {
		out[i] = ToResponse(s)
	}
	return out
}
