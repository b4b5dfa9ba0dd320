package store

import (
	"context"
	"testing"

	"github.com/diewo77/go-crm/internal/models"
)

func TestContractLists(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	client := &models.Client{FullName: "List Co"}
	if err := s.CreateClient(ctx, client); err != nil {
		t.Fatal(err)
	}

	for _, k := range []*models.Contract{
		{ClientID: client.ID, Status: models.ContractPending, TotalAmount: 100, AmountDue: 100},
		{ClientID: client.ID, Status: models.ContractSigned, TotalAmount: 200, AmountDue: 50},
		{ClientID: client.ID, Status: models.ContractSigned, TotalAmount: 300, AmountDue: 0},
		{ClientID: client.ID, Status: models.ContractCancelled, TotalAmount: 400, AmountDue: 0},
	} {
		if err := s.CreateContract(ctx, k); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.ListContracts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("all: got %d want 4", len(all))
	}

	unsigned, err := s.ListUnsignedContracts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(unsigned) != 2 {
		t.Fatalf("unsigned: got %d want 2", len(unsigned))
	}
	for _, k := range unsigned {
		if k.Status == models.ContractSigned {
			t.Fatalf("signed contract in unsigned list: %+v", k)
		}
	}

	unpaid, err := s.ListUnpaidContracts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(unpaid) != 2 {
		t.Fatalf("unpaid: got %d want 2", len(unpaid))
	}
	for _, k := range unpaid {
		if k.AmountDue <= 0 {
			t.Fatalf("settled contract in unpaid list: %+v", k)
		}
	}
}

func TestGetContractPreloadsDecryptedClient(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	client := &models.Client{FullName: "Preload Co", Email: "contact@preload.example"}
	if err := s.CreateClient(ctx, client); err != nil {
		t.Fatal(err)
	}
	contract := &models.Contract{ClientID: client.ID, Status: models.ContractPending}
	if err := s.CreateContract(ctx, contract); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetContract(ctx, contract.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Client == nil {
		t.Fatal("client not preloaded")
	}
	if got.Client.Email != "contact@preload.example" {
		t.Fatalf("preloaded client not decrypted: %q", got.Client.Email)
	}
}
