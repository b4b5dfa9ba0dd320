package policy

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/db"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/rbac"
	"github.com/diewo77/go-crm/internal/secrets"
	"github.com/diewo77/go-crm/internal/store"
)

type fixture struct {
	t      *testing.T
	db     *gorm.DB
	store  *store.Store
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Migrate(d); err != nil {
		t.Fatal(err)
	}
	if err := db.SeedRBAC(d); err != nil {
		t.Fatal(err)
	}
	codec, err := secrets.NewCodec(bytes.Repeat([]byte{3}, secrets.KeySize))
	if err != nil {
		t.Fatal(err)
	}
	st := store.New(d, codec)
	return &fixture{t: t, db: d, store: st, engine: NewEngine(st, zerolog.Nop())}
}

// addUser inserts a collaborator row directly and returns its
// principal. An empty role leaves the account roleless.
func (f *fixture) addUser(email, role string) *auth.Principal {
	f.t.Helper()
	user := models.User{Email: email, PasswordHash: "irrelevant"}
	if role != "" {
		var r models.Role
		if err := f.db.Where("name = ?", role).First(&r).Error; err != nil {
			f.t.Fatal(err)
		}
		user.RoleID = &r.ID
	}
	if err := f.db.Create(&user).Error; err != nil {
		f.t.Fatal(err)
	}
	return &auth.Principal{ID: user.ID, Email: email, Role: role}
}

func (f *fixture) addClient(owner *auth.Principal, name string) *models.Client {
	f.t.Helper()
	client, err := f.engine.CreateClient(context.Background(), owner, ClientInput{FullName: name, Email: name + "@client.example"})
	if err != nil {
		f.t.Fatal(err)
	}
	return client
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func f64Ptr(v float64) *float64 { return &v }

func statusPtr(s models.ContractStatus) *models.ContractStatus { return &s }

func TestCreateClientAutoAssignsOwner(t *testing.T) {
	f := newFixture(t)
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	other := f.addUser("other@example.com", rbac.RoleSales)

	// The supplied sales contact is overridden for non-admin callers.
	client, err := f.engine.CreateClient(context.Background(), sales, ClientInput{
		FullName:       "Kevin Casey",
		SalesContactID: &other.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if client.SalesContactID == nil || *client.SalesContactID != sales.ID {
		t.Fatalf("creator must be auto-assigned as owner, got %v", client.SalesContactID)
	}
}

func TestCreateClientAdminControlsOwner(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser("admin@example.com", rbac.RoleAdmin)
	sales := f.addUser("sales@example.com", rbac.RoleSales)

	client, err := f.engine.CreateClient(context.Background(), admin, ClientInput{
		FullName:       "Explicit Owner",
		SalesContactID: &sales.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if client.SalesContactID == nil || *client.SalesContactID != sales.ID {
		t.Fatalf("admin's explicit owner must stick, got %v", client.SalesContactID)
	}

	unowned, err := f.engine.CreateClient(context.Background(), admin, ClientInput{FullName: "No Owner"})
	if err != nil {
		t.Fatal(err)
	}
	if unowned.SalesContactID != nil {
		t.Fatal("admin may create an unowned client")
	}

	missing := uint(9999)
	_, err = f.engine.CreateClient(context.Background(), admin, ClientInput{
		FullName:       "Bad Owner",
		SalesContactID: &missing,
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown owner: expected NotFound, got %v", err)
	}
}

func TestCreateClientIdentityAndPermissionStages(t *testing.T) {
	f := newFixture(t)
	support := f.addUser("support@example.com", rbac.RoleSupport)
	roleless := f.addUser("roleless@example.com", "")

	_, err := f.engine.CreateClient(context.Background(), nil, ClientInput{FullName: "X"})
	if !apperr.IsKind(err, apperr.KindNotAuthenticated) {
		t.Fatalf("nil principal: expected NotAuthenticated, got %v", err)
	}
	_, err = f.engine.CreateClient(context.Background(), support, ClientInput{FullName: "X"})
	if !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Fatalf("support: expected PermissionDenied, got %v", err)
	}
	_, err = f.engine.CreateClient(context.Background(), roleless, ClientInput{FullName: "X"})
	if !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Fatalf("roleless: expected PermissionDenied, got %v", err)
	}
}

func TestUpdateClientDropsOwnerChangeForNonAdmin(t *testing.T) {
	f := newFixture(t)
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	other := f.addUser("other@example.com", rbac.RoleSales)
	client := f.addClient(sales, "Portfolio Client")

	updated, err := f.engine.UpdateClient(context.Background(), sales, client.ID, ClientChanges{
		Phone:          strPtr("0611223344"),
		SalesContactID: &other.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	// The phone change lands, the reassignment is dropped without error.
	if updated.Phone != "0611223344" {
		t.Fatalf("phone not applied: %q", updated.Phone)
	}
	if updated.SalesContactID == nil || *updated.SalesContactID != sales.ID {
		t.Fatalf("owner must be unchanged, got %v", updated.SalesContactID)
	}
}

func TestUpdateClientOwnershipDenied(t *testing.T) {
	f := newFixture(t)
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	other := f.addUser("other@example.com", rbac.RoleSales)
	client := f.addClient(sales, "Someone Else's")

	_, err := f.engine.UpdateClient(context.Background(), other, client.ID, ClientChanges{
		FullName: strPtr("Hijacked"),
	})
	if !apperr.IsKind(err, apperr.KindOwnershipDenied) {
		t.Fatalf("expected OwnershipDenied, got %v", err)
	}
}

func TestCreateContractRules(t *testing.T) {
	f := newFixture(t)
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	other := f.addUser("other@example.com", rbac.RoleSales)
	client := f.addClient(sales, "Contract Client")

	contract, err := f.engine.CreateContract(context.Background(), sales, client.ID, ContractInput{
		TotalAmount: 1000, AmountDue: 1000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if contract.Status != models.ContractPending {
		t.Fatalf("status must default to PENDING, got %s", contract.Status)
	}
	if contract.SalesContactID == nil || *contract.SalesContactID != sales.ID {
		t.Fatal("contract must inherit the client's owner")
	}
	if contract.SignedAt != nil {
		t.Fatal("pending contract must not carry a signature date")
	}

	_, err = f.engine.CreateContract(context.Background(), other, client.ID, ContractInput{TotalAmount: 1})
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("foreign client: expected BusinessRule, got %v", err)
	}
	_, err = f.engine.CreateContract(context.Background(), sales, 9999, ContractInput{TotalAmount: 1})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown client: expected NotFound, got %v", err)
	}
	_, err = f.engine.CreateContract(context.Background(), sales, client.ID, ContractInput{TotalAmount: -5})
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("negative amount: expected BusinessRule, got %v", err)
	}
	_, err = f.engine.CreateContract(context.Background(), sales, client.ID, ContractInput{Status: "DRAFT"})
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("bad status: expected BusinessRule, got %v", err)
	}
}

func TestContractSignedAtStamping(t *testing.T) {
	f := newFixture(t)
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	client := f.addClient(sales, "Signer")

	signTime := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	f.engine.now = func() time.Time { return signTime }

	contract, err := f.engine.CreateContract(context.Background(), sales, client.ID, ContractInput{
		TotalAmount: 500, AmountDue: 500,
	})
	if err != nil {
		t.Fatal(err)
	}

	signed, err := f.engine.UpdateContract(context.Background(), sales, contract.ID, ContractChanges{
		Status: statusPtr(models.ContractSigned),
	})
	if err != nil {
		t.Fatal(err)
	}
	if signed.SignedAt == nil || !signed.SignedAt.Equal(signTime) {
		t.Fatalf("signed_at: got %v want %v", signed.SignedAt, signTime)
	}

	// A later update of an already signed contract never re-stamps.
	f.engine.now = func() time.Time { return signTime.Add(48 * time.Hour) }
	later, err := f.engine.UpdateContract(context.Background(), sales, contract.ID, ContractChanges{
		AmountDue: f64Ptr(0),
		Status:    statusPtr(models.ContractSigned),
	})
	if err != nil {
		t.Fatal(err)
	}
	if later.SignedAt == nil || !later.SignedAt.Equal(signTime) {
		t.Fatalf("signed_at re-stamped: got %v want %v", later.SignedAt, signTime)
	}
	if later.AmountDue != 0 {
		t.Fatalf("amount due not applied: %v", later.AmountDue)
	}
}

func TestContractCreatedSignedIsStamped(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser("admin@example.com", rbac.RoleAdmin)
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	client := f.addClient(sales, "Presigned")

	signTime := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	f.engine.now = func() time.Time { return signTime }

	contract, err := f.engine.CreateContract(context.Background(), admin, client.ID, ContractInput{
		TotalAmount: 100, AmountDue: 0, Status: models.ContractSigned,
	})
	if err != nil {
		t.Fatal(err)
	}
	if contract.SignedAt == nil || !contract.SignedAt.Equal(signTime) {
		t.Fatalf("signed_at: got %v want %v", contract.SignedAt, signTime)
	}
}

func TestUpdateContractSalesContactAdminOnly(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser("admin@example.com", rbac.RoleAdmin)
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	other := f.addUser("other@example.com", rbac.RoleSales)
	client := f.addClient(sales, "Reassigned")

	contract, err := f.engine.CreateContract(context.Background(), sales, client.ID, ContractInput{TotalAmount: 10})
	if err != nil {
		t.Fatal(err)
	}

	// Non-admin reassignment is dropped, the rest of the update lands.
	updated, err := f.engine.UpdateContract(context.Background(), sales, contract.ID, ContractChanges{
		TotalAmount:    f64Ptr(20),
		SalesContactID: &other.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.TotalAmount != 20 {
		t.Fatalf("total not applied: %v", updated.TotalAmount)
	}
	if updated.SalesContactID == nil || *updated.SalesContactID != sales.ID {
		t.Fatalf("non-admin reassignment must be dropped, got %v", updated.SalesContactID)
	}

	updated, err = f.engine.UpdateContract(context.Background(), admin, contract.ID, ContractChanges{
		SalesContactID: &other.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.SalesContactID == nil || *updated.SalesContactID != other.ID {
		t.Fatalf("admin reassignment must stick, got %v", updated.SalesContactID)
	}
}

func TestCreateEventRules(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser("admin@example.com", rbac.RoleAdmin)
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	other := f.addUser("other@example.com", rbac.RoleSales)
	support := f.addUser("support@example.com", rbac.RoleSupport)
	client := f.addClient(sales, "Event Client")

	pending, err := f.engine.CreateContract(context.Background(), sales, client.ID, ContractInput{TotalAmount: 10})
	if err != nil {
		t.Fatal(err)
	}

	// Support holds event.write but is refused by the business rule.
	_, err = f.engine.CreateEvent(context.Background(), support, pending.ID, EventInput{Location: "Paris"})
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("support create: expected BusinessRule, got %v", err)
	}

	// Commercial cannot attach an event to an unsigned contract.
	_, err = f.engine.CreateEvent(context.Background(), sales, pending.ID, EventInput{Location: "Paris"})
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("unsigned contract: expected BusinessRule, got %v", err)
	}

	// Admin bypasses the signature rule.
	if _, err := f.engine.CreateEvent(context.Background(), admin, pending.ID, EventInput{Location: "Lyon"}); err != nil {
		t.Fatalf("admin create on pending contract: %v", err)
	}

	if _, err := f.engine.UpdateContract(context.Background(), sales, pending.ID, ContractChanges{
		Status: statusPtr(models.ContractSigned),
	}); err != nil {
		t.Fatal(err)
	}

	// Commercial on the signed contract of a foreign client.
	_, err = f.engine.CreateEvent(context.Background(), other, pending.ID, EventInput{Location: "Paris"})
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("foreign client: expected BusinessRule, got %v", err)
	}

	event, err := f.engine.CreateEvent(context.Background(), sales, pending.ID, EventInput{Location: "Paris", Attendees: 80})
	if err != nil {
		t.Fatal(err)
	}
	if event.SupportContactID != nil {
		t.Fatal("new events must start without a support contact")
	}

	_, err = f.engine.CreateEvent(context.Background(), sales, pending.ID, EventInput{Attendees: -1})
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("negative attendees: expected BusinessRule, got %v", err)
	}
}

func TestUpdateEventRules(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser("admin@example.com", rbac.RoleAdmin)
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	support := f.addUser("support@example.com", rbac.RoleSupport)
	support2 := f.addUser("support2@example.com", rbac.RoleSupport)
	client := f.addClient(sales, "Event Client")

	contract, err := f.engine.CreateContract(context.Background(), sales, client.ID, ContractInput{
		TotalAmount: 10, Status: models.ContractSigned,
	})
	if err != nil {
		t.Fatal(err)
	}
	event, err := f.engine.CreateEvent(context.Background(), sales, contract.ID, EventInput{Location: "Paris"})
	if err != nil {
		t.Fatal(err)
	}

	// The creating commercial cannot update the event.
	_, err = f.engine.UpdateEvent(context.Background(), sales, event.ID, EventChanges{Notes: strPtr("x")})
	if !apperr.IsKind(err, apperr.KindOwnershipDenied) {
		t.Fatalf("commercial update: expected OwnershipDenied, got %v", err)
	}

	// Unassigned support cannot update it either.
	_, err = f.engine.UpdateEvent(context.Background(), support, event.ID, EventChanges{Notes: strPtr("x")})
	if !apperr.IsKind(err, apperr.KindOwnershipDenied) {
		t.Fatalf("unassigned support: expected OwnershipDenied, got %v", err)
	}

	// Admin assigns by email; unknown email is a distinct failure.
	_, err = f.engine.UpdateEvent(context.Background(), admin, event.ID, EventChanges{
		SupportEmail: strPtr("ghost@example.com"),
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown support email: expected NotFound, got %v", err)
	}
	assigned, err := f.engine.UpdateEvent(context.Background(), admin, event.ID, EventChanges{
		SupportEmail: strPtr("support@example.com"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if assigned.SupportContactID == nil || *assigned.SupportContactID != support.ID {
		t.Fatalf("assignment by email failed: %v", assigned.SupportContactID)
	}

	// The assigned support updates logistics but cannot reassign.
	updated, err := f.engine.UpdateEvent(context.Background(), support, event.ID, EventChanges{
		Notes:            strPtr("badge printing at entrance B"),
		Attendees:        intPtr(120),
		SupportContactID: &support2.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Notes != "badge printing at entrance B" || updated.Attendees != 120 {
		t.Fatalf("logistics changes not applied: %+v", updated)
	}
	if updated.SupportContactID == nil || *updated.SupportContactID != support.ID {
		t.Fatalf("support reassignment must be dropped, got %v", updated.SupportContactID)
	}
}

func TestUserLifecycleRules(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser("admin@example.com", rbac.RoleAdmin)
	sales := f.addUser("sales@example.com", rbac.RoleSales)

	created, err := f.engine.CreateUser(context.Background(), admin, UserInput{
		Email: "new@example.com", FullName: "New Hire", RoleName: rbac.RoleSupport,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Empty password falls back to the first-login placeholder.
	if !secrets.VerifyPassword("changeme", created.PasswordHash) {
		t.Fatal("placeholder password not set")
	}

	_, err = f.engine.CreateUser(context.Background(), admin, UserInput{Email: "new@example.com"})
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("duplicate email: expected BusinessRule, got %v", err)
	}
	_, err = f.engine.CreateUser(context.Background(), admin, UserInput{Email: "x@example.com", RoleName: "intern"})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown role: expected NotFound, got %v", err)
	}
	_, err = f.engine.CreateUser(context.Background(), sales, UserInput{Email: "y@example.com"})
	if !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Fatalf("commercial create user: expected PermissionDenied, got %v", err)
	}

	// Self-deletion is refused before the permission stage, so even a
	// caller without user.delete sees the specific reason.
	err = f.engine.DeleteUser(context.Background(), sales, sales.ID)
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("self delete: expected BusinessRule, got %v", err)
	}
	err = f.engine.DeleteUser(context.Background(), admin, admin.ID)
	if !apperr.IsKind(err, apperr.KindBusinessRule) {
		t.Fatalf("admin self delete: expected BusinessRule, got %v", err)
	}
	err = f.engine.DeleteUser(context.Background(), sales, created.ID)
	if !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Fatalf("commercial delete: expected PermissionDenied, got %v", err)
	}

	if err := f.engine.DeleteUser(context.Background(), admin, created.ID); err != nil {
		t.Fatal(err)
	}
	err = f.engine.DeleteUser(context.Background(), admin, created.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("double delete: expected NotFound, got %v", err)
	}
}

func TestReadsArePermissionGated(t *testing.T) {
	f := newFixture(t)
	support := f.addUser("support@example.com", rbac.RoleSupport)
	roleless := f.addUser("roleless@example.com", "")
	sales := f.addUser("sales@example.com", rbac.RoleSales)
	f.addClient(sales, "Readable")

	// Every role with client.read sees the full list, decrypted.
	clients, err := f.engine.ListClients(context.Background(), support)
	if err != nil {
		t.Fatal(err)
	}
	if len(clients) != 1 || clients[0].FullName != "Readable" {
		t.Fatalf("support read: %+v", clients)
	}

	if _, err := f.engine.ListClients(context.Background(), roleless); !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Fatalf("roleless read: expected PermissionDenied, got %v", err)
	}
	if _, err := f.engine.ListUsers(context.Background(), support); !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Fatalf("support user list: expected PermissionDenied, got %v", err)
	}
}

func TestDispatchRoutesToTypedEntryPoints(t *testing.T) {
	f := newFixture(t)
	sales := f.addUser("sales@example.com", rbac.RoleSales)

	out, err := f.engine.AuthorizeCreate(context.Background(), sales, KindClient, ClientInput{FullName: "Via Dispatch"})
	if err != nil {
		t.Fatal(err)
	}
	client, ok := out.(*models.Client)
	if !ok || client.FullName != "Via Dispatch" {
		t.Fatalf("dispatch create: %T %v", out, out)
	}

	if _, err := f.engine.AuthorizeCreate(context.Background(), sales, KindClient, "wrong"); err == nil {
		t.Fatal("mismatched payload type must fail")
	}
	if _, err := f.engine.AuthorizeCreate(context.Background(), sales, "invoice", ClientInput{}); err == nil {
		t.Fatal("unknown kind must fail")
	}
	if err := f.engine.AuthorizeDelete(context.Background(), sales, KindClient, client.ID); err == nil {
		t.Fatal("delete is only routable for collaborators")
	}
}

// TestFullWorkflow walks the crew through a complete engagement: the
// admin hires, the commercial sells, support runs the event.
func TestFullWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.addUser("root@example.com", rbac.RoleAdmin)

	aliceUser, err := f.engine.CreateUser(ctx, admin, UserInput{
		Email: "alice@example.com", FullName: "Alice Martin", Password: "pw", RoleName: rbac.RoleSales,
	})
	require.NoError(t, err)
	bobUser, err := f.engine.CreateUser(ctx, admin, UserInput{
		Email: "bob@example.com", FullName: "Bob Durand", Password: "pw", RoleName: rbac.RoleSupport,
	})
	require.NoError(t, err)

	alice := &auth.Principal{ID: aliceUser.ID, Email: aliceUser.Email, Role: rbac.RoleSales}
	bob := &auth.Principal{ID: bobUser.ID, Email: bobUser.Email, Role: rbac.RoleSupport}

	client, err := f.engine.CreateClient(ctx, alice, ClientInput{
		FullName: "Kevin Casey", Email: "kevin@startup.io", Company: "Cool Startup LLC", Phone: "0666112233",
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, *client.SalesContactID)

	contract, err := f.engine.CreateContract(ctx, alice, client.ID, ContractInput{
		TotalAmount: 12000, AmountDue: 12000,
	})
	require.NoError(t, err)

	// No event before signature.
	_, err = f.engine.CreateEvent(ctx, alice, contract.ID, EventInput{Location: "Paris"})
	require.True(t, apperr.IsKind(err, apperr.KindBusinessRule))

	contract, err = f.engine.UpdateContract(ctx, alice, contract.ID, ContractChanges{
		Status: statusPtr(models.ContractSigned), AmountDue: f64Ptr(6000),
	})
	require.NoError(t, err)
	require.NotNil(t, contract.SignedAt)

	when := time.Date(2026, 6, 4, 18, 0, 0, 0, time.UTC)
	event, err := f.engine.CreateEvent(ctx, alice, contract.ID, EventInput{
		EventDate: &when, Location: "53 Rue du Château, Candé-sur-Beuvron", Attendees: 75,
	})
	require.NoError(t, err)
	require.Nil(t, event.SupportContactID)

	// Dispatch: admin assigns Bob by email.
	event, err = f.engine.UpdateEvent(ctx, admin, event.ID, EventChanges{
		SupportEmail: strPtr("bob@example.com"),
	})
	require.NoError(t, err)
	require.Equal(t, bob.ID, *event.SupportContactID)

	// Alice is out of the loop from here on.
	_, err = f.engine.UpdateEvent(ctx, alice, event.ID, EventChanges{Notes: strPtr("nope")})
	require.True(t, apperr.IsKind(err, apperr.KindOwnershipDenied))

	event, err = f.engine.UpdateEvent(ctx, bob, event.ID, EventChanges{
		Notes: strPtr("catering booked, sound check 16h"),
	})
	require.NoError(t, err)
	require.Equal(t, "catering booked, sound check 16h", event.Notes)

	// The stored client row is ciphertext; the read path decrypts.
	var raw models.Client
	require.NoError(t, f.db.First(&raw, client.ID).Error)
	require.NotEqual(t, "kevin@startup.io", raw.Email)

	viewed, err := f.engine.GetClient(ctx, bob, client.ID)
	require.NoError(t, err)
	require.Equal(t, "kevin@startup.io", viewed.Email)

	mine, err := f.engine.ListMyEvents(ctx, bob)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	unpaid, err := f.engine.ListUnpaidContracts(ctx, alice)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)

	forClient, err := f.engine.ListContractsForClient(ctx, alice, client.ID)
	require.NoError(t, err)
	require.Len(t, forClient, 1)

	forContract, err := f.engine.ListEventsForContract(ctx, bob, contract.ID)
	require.NoError(t, err)
	require.Len(t, forContract, 1)
}
