package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gartstein/hiringboard/internal/company/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// dummyCompanyController is a simple dummy implementation of CompanyController.
type dummyCompanyController struct{}

func (d *dummyCompanyController) ListCompanies(_ context.Context) ([]*models.Company, error) {
	return []*models.Company{{Name: "Dummy", Status: models.StatusHiring}}, nil
}

func (d *dummyCompanyController) CreateCompany(_ context.Context, company *models.Company) (*models.Company, error) {
	// Simply return the company as created.
	return company, nil
}

func (d *dummyCompanyController) GetCompany(_ context.Context, name string) (*models.Company, error) {
	return &models.Company{Name: name, Status: models.StatusHiring}, nil
}

func (d *dummyCompanyController) UpdateCompany(_ context.Context, name string, _ *models.CompanyUpdate) (*models.Company, error) {
	return &models.Company{Name: name, Status: models.StatusLayoffs}, nil
}

func (d *dummyCompanyController) DeleteCompany(_ context.Context, _ string) error {
	// Assume deletion always succeeds.
	return nil
}

func TestServer_RegisterHTTPHandler(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewServer(0, 0, logger)

	s.RegisterHTTPHandler(http.NotFoundHandler())

	if s.httpServer.Handler == nil {
		t.Error("expected httpServer.Handler to be set")
	}
}

func TestServer_StartStop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	// Port zero lets the kernel pick free ports.
	s := NewServer(0, 0, logger)

	dummyCtrl := &dummyCompanyController{}
	s.RegisterGRPCHandler(NewCompanyHandler(dummyCtrl, logger))
	s.RegisterHTTPHandler(NewRouter(NewHTTPHandler(dummyCtrl, logger), RouterConfig{}, logger))

	if err := s.Listen(); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	grpcAddr, httpAddr := s.GRPCAddr(), s.HTTPAddr()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve()
	}()

	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("failed to create gRPC client: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := NewCompanyServiceClient(conn).GetCompany(ctx, "Dummy")
	if err != nil {
		t.Errorf("gRPC GetCompany failed: %v", err)
	} else if name := got.GetFields()["name"].GetStringValue(); name != "Dummy" {
		t.Errorf("expected name %q, got %q", "Dummy", name)
	}
	conn.Close()

	resp, err := http.Get("http://" + httpAddr + "/companies/")
	if err != nil {
		t.Fatalf("HTTP request failed: %v", err)
	}
	var list []CompanyResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Errorf("failed to decode list: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || len(list) != 1 {
		t.Errorf("unexpected list response %d %v", resp.StatusCode, list)
	}

	s.Stop()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Server Serve returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for server to stop")
	}

	// The gRPC endpoint is released after shutdown.
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		t.Errorf("expected to be able to listen on %q after shutdown, but got error: %v", grpcAddr, err)
	} else {
		lis.Close()
	}
}

func TestServer_ListenConflict(t *testing.T) {
	logger := zaptest.NewLogger(t)
	taken, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer taken.Close()
	port := taken.Addr().(*net.TCPAddr).Port

	s := NewServer(0, port, logger)
	if err := s.Listen(); err == nil {
		t.Error("expected listen error for a port already in use")
	}
}
