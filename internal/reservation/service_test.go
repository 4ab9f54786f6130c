package reservation

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRepo struct {
	created      []Reservation
	status       Status
	getStatusErr error
	updateCalled bool
}

func (f *fakeRepo) Create(ctx context.Context, res Reservation) (Reservation, error) {
	res.ID = len(f.created) + 1
	f.created = append(f.created, res)
	return res, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]Reservation, error) {
	return f.created, nil
}

func (f *fakeRepo) GetStatus(ctx context.Context, id int) (Status, error) {
	return f.status, f.getStatusErr
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int, status Status) error {
	f.updateCalled = true
	return nil
}

var _ Repository = (*fakeRepo)(nil)

func TestCreate_StartsPendingWithCode(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "Isabel Torres", 4, "2025-11-20")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected Pendiente, got %s", created.Status)
	}
	if !strings.HasPrefix(created.Code, "R-") || len(created.Code) != 10 {
		t.Fatalf("unexpected pickup code %q", created.Code)
	}
}

func TestCreate_RequiresCustomerAndProduct(t *testing.T) {
	svc := NewService(&fakeRepo{})

	if _, err := svc.Create(context.Background(), "", 4, ""); !errors.Is(err, ErrInvalidReservation) {
		t.Fatalf("expected ErrInvalidReservation, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "Isabel", 0, ""); !errors.Is(err, ErrInvalidReservation) {
		t.Fatalf("expected ErrInvalidReservation, got %v", err)
	}
}

func TestUpdateStatus_Workflow(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		wantErr error
	}{
		{StatusPending, StatusConfirmed, nil},
		{StatusPending, StatusCancelled, nil},
		{StatusPending, StatusCompleted, ErrInvalidTransition},
		{StatusConfirmed, StatusCompleted, nil},
		{StatusConfirmed, StatusCancelled, nil},
		{StatusConfirmed, StatusPending, ErrInvalidTransition},
		{StatusCompleted, StatusCancelled, ErrInvalidTransition},
		{StatusCancelled, StatusConfirmed, ErrInvalidTransition},
	}

	for _, tc := range cases {
		repo := &fakeRepo{status: tc.from}
		svc := NewService(repo)

		err := svc.UpdateStatus(context.Background(), 1, tc.to)
		if tc.wantErr == nil && err != nil {
			t.Errorf("%s -> %s: expected nil err, got %v", tc.from, tc.to, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.wantErr, err)
		}
	}
}

func TestUpdateStatus_UnknownValue(t *testing.T) {
	repo := &fakeRepo{status: StatusPending}
	svc := NewService(repo)

	if err := svc.UpdateStatus(context.Background(), 1, Status("Lista")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if repo.updateCalled {
		t.Error("repository must not be called for an unknown status")
	}
}
