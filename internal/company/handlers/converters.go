package handlers

import (
	"errors"
	"fmt"
	"net/http"

	e "github.com/gartstein/hiringboard/internal/company/errors"
	"github.com/gartstein/hiringboard/internal/company/models"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const msgServerError = "A server error occurred."

// CompanyRequest is the create payload, accepted as form data or JSON.
// Empty optional fields take their defaults.
type CompanyRequest struct {
	Name            string `form:"name" json:"name"`
	Status          string `form:"status" json:"status"`
	ApplicationLink string `form:"application_link" json:"application_link"`
	Notes           string `form:"notes" json:"notes"`
}

// CompanyPatchRequest is the partial update payload. Absent keys stay nil.
type CompanyPatchRequest struct {
	Name            *string `form:"name" json:"name"`
	Status          *string `form:"status" json:"status"`
	ApplicationLink *string `form:"application_link" json:"application_link"`
	Notes           *string `form:"notes" json:"notes"`
}

// CompanyResponse is the flat serialized form of a company.
type CompanyResponse struct {
	Name            string `json:"name"`
	Status          string `json:"status"`
	ApplicationLink string `json:"application_link"`
	Notes           string `json:"notes"`
}

func requestToModel(req *CompanyRequest) *models.Company {
	return &models.Company{
		Name:            req.Name,
		Status:          models.Status(req.Status),
		ApplicationLink: req.ApplicationLink,
		Notes:           req.Notes,
	}
}

func patchToUpdate(req *CompanyPatchRequest) *models.CompanyUpdate {
	update := &models.CompanyUpdate{
		Name:            req.Name,
		ApplicationLink: req.ApplicationLink,
		Notes:           req.Notes,
	}
	if req.Status != nil {
		s := models.Status(*req.Status)
		update.Status = &s
	}
	return update
}

func modelToResponse(company *models.Company) CompanyResponse {
	return CompanyResponse{
		Name:            company.Name,
		Status:          string(company.Status),
		ApplicationLink: company.ApplicationLink,
		Notes:           company.Notes,
	}
}

func modelsToResponse(companies []*models.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, modelToResponse(c))
	}
	return out
}

// errorFields returns the field-keyed messages carried by err, if any.
func errorFields(err error) (map[string][]string, bool) {
	var verr *e.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	if errors.Is(err, e.ErrDuplicateName) {
		return map[string][]string{"name": {e.MsgDuplicateName}}, true
	}
	return nil, false
}

// mapHTTPError maps domain or repository errors to an HTTP status and body.
func mapHTTPError(err error, logger *zap.Logger) (int, interface{}) {
	if fields, ok := errorFields(err); ok {
		return http.StatusBadRequest, fields
	}
	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, detail(e.MsgNotFound)
	case errors.Is(err, e.ErrInvalidInput):
		return http.StatusBadRequest, detail(err.Error())
	default:
		logger.Error("Internal server error", zap.Error(err))
		return http.StatusInternalServerError, detail(msgServerError)
	}
}

func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}

// modelToStruct converts a company into its protobuf Struct form.
func modelToStruct(company *models.Company) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"name":             company.Name,
		"status":           string(company.Status),
		"application_link": company.ApplicationLink,
		"notes":            company.Notes,
	})
}

// structToModel reads the known company keys from s. Missing or non-string
// values are treated as empty.
func structToModel(s *structpb.Struct) (*models.Company, error) {
	if s == nil {
		return nil, errors.New("nil company data")
	}
	fields := s.GetFields()
	return &models.Company{
		Name:            fields["name"].GetStringValue(),
		Status:          models.Status(fields["status"].GetStringValue()),
		ApplicationLink: fields["application_link"].GetStringValue(),
		Notes:           fields["notes"].GetStringValue(),
	}, nil
}

// fieldsToStruct converts a validation error map into a protobuf Struct.
func fieldsToStruct(fields map[string][]string) (*structpb.Struct, error) {
	m := make(map[string]interface{}, len(fields))
	for field, msgs := range fields {
		list := make([]interface{}, 0, len(msgs))
		for _, msg := range msgs {
			list = append(list, msg)
		}
		m[field] = list
	}
	return structpb.NewStruct(m)
}

// mapGRPCError maps domain or repository errors to gRPC status codes.
// Field errors travel as a Struct detail.
func mapGRPCError(err error, logger *zap.Logger) error {
	var code codes.Code
	switch {
	case errors.Is(err, e.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrDuplicateName):
		code = codes.AlreadyExists
	case errors.Is(err, e.ErrInvalidInput):
		code = codes.InvalidArgument
	default:
		logger.Error("Internal server error", zap.Error(err))
		return status.Error(codes.Internal, fmt.Sprintf("internal server error: %v", err))
	}

	st := status.New(code, err.Error())
	if fields, ok := errorFields(err); ok {
		if details, derr := fieldsToStruct(fields); derr == nil {
			if withDetails, werr := st.WithDetails(details); werr == nil {
				st = withDetails
			}
		}
	}
	return st.Err()
}
