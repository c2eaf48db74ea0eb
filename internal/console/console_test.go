package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/urbanexpress/storefront/internal/orders"
	"github.com/urbanexpress/storefront/internal/state/statetest"
	"github.com/urbanexpress/storefront/internal/storefront"
	"github.com/urbanexpress/storefront/internal/user"
	"github.com/urbanexpress/storefront/pkg/enums"
	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/logger"
)

type harness struct {
	env *statetest.Env
	out *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{env: statetest.NewEnv(t), out: &bytes.Buffer{}}
}

// run executes one command against a freshly loaded storefront so each
// call sees only what previous calls persisted.
func (h *harness) run(t *testing.T, args ...string) (map[string]json.RawMessage, error) {
	t.Helper()
	sf, err := storefront.New(h.env.Deps)
	if err != nil {
		t.Fatalf("new storefront: %v", err)
	}
	app := &App{
		Storefront:    sf,
		Logger:        logger.Nop(),
		Gatherer:      h.env.Registry,
		Out:           h.out,
		WhatsAppPhone: "+966 55 000 0000",
		Language:      enums.LanguageEnglish,
	}
	h.out.Reset()
	if err := app.Run(context.Background(), args); err != nil {
		return nil, err
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(h.out.Bytes(), &envelope); err != nil {
		t.Fatalf("decode output %q: %v", h.out.String(), err)
	}
	return envelope, nil
}

func (h *harness) mustRun(t *testing.T, dest any, args ...string) {
	t.Helper()
	envelope, err := h.run(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	if dest != nil {
		if err := json.Unmarshal(envelope["data"], dest); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
}

func (h *harness) expectCode(t *testing.T, want pkgerrors.Code, args ...string) {
	t.Helper()
	_, err := h.run(t, args...)
	if got := pkgerrors.CodeOf(err); got != want {
		t.Fatalf("%s: expected %s got %s (%v)", strings.Join(args, " "), want, got, err)
	}
}

func TestRunRejectsUnknownCommands(t *testing.T) {
	h := newHarness(t)

	h.expectCode(t, pkgerrors.CodeValidation, "categories")
	h.expectCode(t, pkgerrors.CodeValidation, "nope", "list")
	h.expectCode(t, pkgerrors.CodeValidation, "orders", "explode")
	h.expectCode(t, pkgerrors.CodeValidation, "orders", "get", "-bogus", "1")
}

func TestCatalogCommandsPersist(t *testing.T) {
	h := newHarness(t)

	var created map[string]string
	h.mustRun(t, &created, "products", "add", "-data", `{"nameAr":"تمر","nameEn":"Dates","categoryId":"1","unitId":"1","price":"40"}`)
	if created["id"] == "" {
		t.Fatalf("expected product id")
	}

	var products []map[string]any
	h.mustRun(t, &products, "products", "list")
	if len(products) != 1 || products[0]["nameEn"] != "Dates" || products[0]["isActive"] != true {
		t.Fatalf("unexpected products %v", products)
	}

	h.mustRun(t, nil, "products", "deactivate", "-id", created["id"])
	var product map[string]any
	h.mustRun(t, &product, "products", "get", "-id", created["id"])
	if product["isActive"] != false {
		t.Fatalf("expected product deactivated got %v", product["isActive"])
	}

	h.expectCode(t, pkgerrors.CodeValidation, "products", "add", "-data", `{"nameEn":"Missing"}`)
	h.expectCode(t, pkgerrors.CodeNotFound, "categories", "update", "-id", "404", "-data", `{"isActive":false}`)
}

func TestOrderLifecycle(t *testing.T) {
	h := newHarness(t)

	var order orders.Order
	h.mustRun(t, &order, "orders", "add", "-data", `{
		"branchId": "1",
		"customer": {"name": "Sara", "phone": "+966500000001"},
		"items": [{"id": "1", "nameEn": "Dates", "quantity": 2, "price": "40"}],
		"total": "100",
		"type": "delivery",
		"paymentMethod": "cash"
	}`)
	if order.Status != enums.OrderStatusPending || order.OrderNumber != "ORD-000004" {
		t.Fatalf("unexpected new order %s %s", order.Status, order.OrderNumber)
	}

	var unread map[string]int
	h.mustRun(t, &unread, "notifications", "unread")
	if unread["unread"] != 1 {
		t.Fatalf("expected 1 unread notification got %d", unread["unread"])
	}

	var assigned orders.Order
	h.mustRun(t, &assigned, "orders", "assign", "-id", string(order.ID), "-type", "delivery", "-staff", "4", "-eta", "25")
	if assigned.DeliveryBoy == nil || assigned.DeliveryBoy.EstimatedTime != 25 {
		t.Fatalf("unexpected delivery assignment %+v", assigned.DeliveryBoy)
	}

	h.expectCode(t, pkgerrors.CodeNotFound, "orders", "assign", "-id", string(order.ID), "-type", "delivery", "-staff", "99")

	var share map[string]string
	h.mustRun(t, &share, "orders", "share", "-id", string(order.ID))
	if !strings.HasPrefix(share["url"], "https://wa.me/966550000000?text=") {
		t.Fatalf("unexpected share url %s", share["url"])
	}

	h.mustRun(t, nil, "orders", "cancel", "-id", string(order.ID))
	var got orders.Order
	h.mustRun(t, &got, "orders", "get", "-id", string(order.ID))
	if got.Status != enums.OrderStatusCancelled {
		t.Fatalf("expected cancelled got %s", got.Status)
	}
}

func TestOrderCancelOutsideGracePeriod(t *testing.T) {
	h := newHarness(t)
	var order orders.Order
	h.mustRun(t, &order, "orders", "add", "-data", `{"branchId":"2","customer":{"name":"Ali"},"items":[{"id":"1","quantity":1,"price":"5"}],"type":"pickup","paymentMethod":"card"}`)

	h.env.Clock.Advance(2 * time.Minute)
	h.expectCode(t, pkgerrors.CodeStateConflict, "orders", "cancel", "-id", string(order.ID))
	h.expectCode(t, pkgerrors.CodeValidation, "orders", "status", "-id", string(order.ID), "-status", "lost")
}

func TestCartPlaceUsesCatalogPrices(t *testing.T) {
	h := newHarness(t)
	var created map[string]string
	h.mustRun(t, &created, "products", "add", "-data", `{"nameAr":"تمر","nameEn":"Dates","categoryId":"1","unitId":"1","price":"40","basePrice":"50"}`)

	var quote struct {
		Count    int                 `json:"count"`
		Checkout storefront.Checkout `json:"checkout"`
	}
	h.mustRun(t, &quote, "cart", "quote", "-data", `{"lines":[{"productId":"`+created["id"]+`","quantity":3}]}`)
	if quote.Count != 3 {
		t.Fatalf("expected 3 items got %d", quote.Count)
	}
	if quote.Checkout.Subtotal.String() != "150" || quote.Checkout.DeliveryFee.String() != "15" {
		t.Fatalf("unexpected checkout %+v", quote.Checkout)
	}

	var order orders.Order
	h.mustRun(t, &order, "cart", "place", "-data", `{"branchId":"1","customer":{"name":"Sara"},"lines":[{"productId":"`+created["id"]+`","quantity":1}],"type":"pickup","paymentMethod":"cash","notes":"  ring twice  "}`)
	if order.Total.String() != "50" {
		t.Fatalf("expected base price total 50 got %s", order.Total)
	}
	if order.Notes != "ring twice" {
		t.Fatalf("expected trimmed notes got %q", order.Notes)
	}

	h.expectCode(t, pkgerrors.CodeNotFound, "cart", "quote", "-data", `{"lines":[{"productId":"404","quantity":1}]}`)
}

func TestStockAndFees(t *testing.T) {
	h := newHarness(t)

	var level map[string]any
	h.mustRun(t, &level, "stock", "set", "-branch", "1", "-product", "2", "-unit", "3", "-quantity", "-4")
	if level["key"] != "1-2-3" || level["quantity"] != "0" {
		t.Fatalf("unexpected stock level %v", level)
	}

	h.expectCode(t, pkgerrors.CodeValidation, "stock", "set", "-branch", "1", "-product", "2", "-unit", "3", "-quantity", "lots")

	var fee map[string]string
	h.mustRun(t, &fee, "fees", "calc", "-amount", "250")
	if fee["fee"] != "10" {
		t.Fatalf("expected fee 10 got %s", fee["fee"])
	}

	var described map[string]string
	h.mustRun(t, &described, "fees", "describe", "-amount", "600", "-lang", "ar")
	if described["description"] != "توصيل مجاني" {
		t.Fatalf("unexpected description %q", described["description"])
	}

	h.mustRun(t, nil, "fees", "remove-tier", "-index", "5")
	var tiers []map[string]any
	h.mustRun(t, &tiers, "fees", "tiers")
	if len(tiers) != 5 {
		t.Fatalf("expected 5 tiers got %d", len(tiers))
	}

	h.expectCode(t, pkgerrors.CodeNotFound, "fees", "remove-tier", "-index", "9")
}

func TestFeesAddTierRejectsDuplicateStart(t *testing.T) {
	h := newHarness(t)

	h.expectCode(t, pkgerrors.CodeConflict, "fees", "add-tier", "-data", `{"minAmount":"100","maxAmount":"149.99","fee":"12"}`)
	if h.out.Len() != 0 {
		t.Fatalf("expected no output for a rejected tier")
	}

	var tiers []map[string]any
	h.mustRun(t, &tiers, "fees", "add-tier", "-data", `{"minAmount":"1000","maxAmount":null,"fee":"0"}`)
	if len(tiers) != 7 {
		t.Fatalf("expected 7 tiers got %d", len(tiers))
	}
	h.mustRun(t, &tiers, "fees", "tiers")
	if len(tiers) != 7 {
		t.Fatalf("expected added tier persisted, got %d tiers", len(tiers))
	}
}

func TestSettingsCommands(t *testing.T) {
	h := newHarness(t)

	h.mustRun(t, nil, "cancellation", "preset", "-preset", "2min")
	if raw, ok := h.env.Raw(t, "cancellationTimeSeconds"); !ok || raw != "120" {
		t.Fatalf("expected stored 120 got %q ok=%v", raw, ok)
	}

	h.expectCode(t, pkgerrors.CodeValidation, "cancellation", "preset", "-preset", "forever")

	h.mustRun(t, nil, "user", "login", "-name", "Omar", "-phone", "+966511111111")
	var shown map[string]any
	h.mustRun(t, &shown, "user", "show")
	if shown["displayName"] != "Omar" {
		t.Fatalf("expected Omar got %v", shown["displayName"])
	}

	h.mustRun(t, nil, "user", "logout")
	if _, ok := h.env.Raw(t, "userName"); ok {
		t.Fatalf("expected userName removed on logout")
	}

	var texts []string
	h.mustRun(t, &texts, "scrolling", "active", "-lang", "en")
	if len(texts) != 3 {
		t.Fatalf("expected 3 active lines got %d", len(texts))
	}
	h.mustRun(t, nil, "scrolling", "toggle", "-id", "4")
	h.mustRun(t, &texts, "scrolling", "active")
	if len(texts) != 4 {
		t.Fatalf("expected 4 active lines got %d", len(texts))
	}
}

func TestFreeTextFlagsAreTrimmedAndCapped(t *testing.T) {
	h := newHarness(t)

	long := strings.Repeat("س", maxNameLen+20)
	var current user.State
	h.mustRun(t, &current, "user", "login", "-name", "  "+long+"  ", "-phone", "  +966511111111 ")
	if n := len([]rune(current.Name)); n != maxNameLen {
		t.Fatalf("expected name capped at %d runes got %d", maxNameLen, n)
	}
	if current.Phone != "+966511111111" {
		t.Fatalf("expected trimmed phone got %q", current.Phone)
	}
	if raw, _ := h.env.Raw(t, "userPhone"); raw != "+966511111111" {
		t.Fatalf("expected trimmed phone stored got %q", raw)
	}

	h.expectCode(t, pkgerrors.CodeValidation, "user", "login", "-name", "Omar", "-phone", "   ")

	var order orders.Order
	h.mustRun(t, &order, "orders", "add", "-data", `{"branchId":"1","customer":{"name":"  Sara  ","phone":" 0500 "},"items":[{"id":"1","quantity":1,"price":"5"}],"type":"pickup","paymentMethod":"cash","notes":"`+strings.Repeat("n", maxNotesLen+1)+`"}`)
	if order.Customer.Name != "Sara" || order.Customer.Phone != "0500" {
		t.Fatalf("expected trimmed customer got %+v", order.Customer)
	}
	if len(order.Notes) != maxNotesLen {
		t.Fatalf("expected notes capped at %d got %d", maxNotesLen, len(order.Notes))
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	buf := &bytes.Buffer{}
	code := WriteError(context.Background(), logger.Nop(), buf,
		pkgerrors.New(pkgerrors.CodeStateConflict, "too late").WithDetails(map[string]any{"allowedTimeSeconds": 60}))
	if code != 4 {
		t.Fatalf("expected exit code 4 got %d", code)
	}

	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != "STATE_CONFLICT" || envelope.Error.Message != "too late" {
		t.Fatalf("unexpected error envelope %+v", envelope.Error)
	}
	if envelope.Error.Details["allowedTimeSeconds"] != float64(60) {
		t.Fatalf("expected details to carry allowedTimeSeconds got %v", envelope.Error.Details)
	}

	buf.Reset()
	code = WriteError(context.Background(), nil, buf, errors.New("disk on fire"))
	if code != 1 {
		t.Fatalf("expected exit code 1 got %d", code)
	}
	if !strings.Contains(buf.String(), `"internal error"`) || strings.Contains(buf.String(), "disk on fire") {
		t.Fatalf("expected internal error to be masked got %s", buf.String())
	}

	buf.Reset()
	code = WriteError(context.Background(), nil, buf, pkgerrors.New(pkgerrors.CodeConflict, "tier 1 already starts at 100"))
	if code != 4 || !strings.Contains(buf.String(), "tier 1 already starts at 100") {
		t.Fatalf("expected conflict message shown with exit code 4, got %d %s", code, buf.String())
	}
}

func TestWriteMetrics(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, nil, "categories", "list")

	sf, err := storefront.New(h.env.Deps)
	if err != nil {
		t.Fatalf("new storefront: %v", err)
	}
	app := &App{Storefront: sf, Gatherer: h.env.Registry}
	buf := &bytes.Buffer{}
	if err := app.WriteMetrics(buf); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	if !strings.Contains(buf.String(), `storefront_state_loads_total{key="admin_categories",outcome="default"} 1`) {
		t.Fatalf("expected categories load counter in %s", buf.String())
	}
}

func TestUsageListsGroups(t *testing.T) {
	buf := &bytes.Buffer{}
	Usage(buf)
	for _, g := range []string{"categories", "orders", "fees", "cancellation", "user"} {
		if !strings.Contains(buf.String(), g) {
			t.Fatalf("expected usage to list %s", g)
		}
	}
}
