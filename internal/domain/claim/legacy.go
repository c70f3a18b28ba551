package claim

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	sharedvo "github.com/claimdesk/claimdesk/internal/domain/shared/valueobjects"
)

// legacyStatusAuthorized is the status older records used instead of the
// authorization flag.
const legacyStatusAuthorized = "AUTHORIZED"

// FromLegacyRecord normalizes a claim record from the legacy API, where the
// same value can live under several field names (including WACS fields).
// Keys it does not consume are kept as metadata.
func FromLegacyRecord(rec map[string]any) (*Claim, error) {
	r := legacyRecord{raw: rec, used: map[string]bool{}}

	p := ReconstructParams{
		ID:        r.str("id", "_id", "claimId"),
		Number:    r.str("claimNumber", "claim_number", "wacsClaimNumber"),
		ProductID: r.str("productId", "product_id", "product.id"),
		Customer: Customer{
			Name:  r.str("customerName", "customer.name", "customer_name"),
			Phone: r.str("customerPhone", "customer.phone", "customer_phone"),
			Email: r.str("customerEmail", "customer.email", "customer_email"),
		},
		ServiceCenterID:      r.str("serviceCenterId", "serviceCenter.id", "service_center_id"),
		RejectionReason:      r.str("rejectionReason", "rejection_reason"),
		TransactionReference: r.str("transactionReference", "paymentReference", "transaction_reference"),
		Version:              1,
	}

	if raw := r.str("imei", "deviceImei", "device.imei"); raw != "" {
		imei, err := vo.NewIMEI(raw)
		if err != nil {
			return nil, fmt.Errorf("legacy claim %s: %w", p.ID, err)
		}
		p.IMEI = imei
	}

	currency := r.str("currency")
	repairCost, err := r.money(currency, "repairCost", "wacsRepairCost", "estimatedCost")
	if err != nil {
		return nil, fmt.Errorf("legacy claim %s: %w", p.ID, err)
	}
	p.RepairCost = repairCost
	paid, err := r.money(currency, "paidAmount", "amountPaid")
	if err != nil {
		return nil, fmt.Errorf("legacy claim %s: %w", p.ID, err)
	}
	p.PaidAmount = paid

	status := strings.ToUpper(r.str("status", "claimStatus"))
	if status == "" {
		status = vo.StatusPending.String()
	}
	if status == legacyStatusAuthorized {
		status = vo.StatusCompleted.String()
		p.AuthorizedForPayment = true
	}
	if p.Status, err = vo.NewClaimStatus(status); err != nil {
		return nil, fmt.Errorf("legacy claim %s: %w", p.ID, err)
	}

	if ps := r.str("paymentStatus", "payment_status"); ps != "" {
		if p.PaymentStatus, err = vo.NewPaymentStatus(ps); err != nil {
			return nil, fmt.Errorf("legacy claim %s: %w", p.ID, err)
		}
	}
	if b, ok := r.boolean("authorizedForPayment", "authorized_for_payment"); ok && b {
		p.AuthorizedForPayment = true
	}

	p.Approved = r.stamp("approvedAt", "approvedBy")
	p.Rejected = r.stamp("rejectedAt", "rejectedBy")
	p.Completed = r.stamp("completedAt", "completedBy")
	p.Authorized = r.stamp("authorizedAt", "authorizedBy")
	p.Paid = r.stamp("paidAt", "paidBy")
	p.CreatedAt = r.timestamp("createdAt", "created_at")
	p.UpdatedAt = r.timestamp("updatedAt", "updated_at")

	if r.err != nil {
		return nil, fmt.Errorf("legacy claim %s: %w", p.ID, r.err)
	}

	p.Metadata = r.leftovers()
	return ReconstructClaim(p)
}

type legacyRecord struct {
	raw  map[string]any
	used map[string]bool
	err  error
}

// lookup returns the first non-empty value among keys and marks every
// candidate key as consumed. A dotted key reads one level into a nested
// object.
func (r *legacyRecord) lookup(keys ...string) (any, bool) {
	var found any
	ok := false
	for _, key := range keys {
		var v any
		var present bool
		if head, tail, nested := strings.Cut(key, "."); nested {
			if obj, isMap := r.raw[head].(map[string]any); isMap {
				r.used[head] = true
				v, present = obj[tail]
			}
		} else {
			v, present = r.raw[key]
			if present {
				r.used[key] = true
			}
		}
		if !ok && present && !isEmptyLegacyValue(v) {
			found, ok = v, true
		}
	}
	return found, ok
}

func isEmptyLegacyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

func (r *legacyRecord) str(keys ...string) string {
	v, ok := r.lookup(keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func (r *legacyRecord) boolean(keys ...string) (bool, bool) {
	v, ok := r.lookup(keys...)
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(t)
		return b, err == nil
	default:
		return false, false
	}
}

func (r *legacyRecord) money(currency string, keys ...string) (sharedvo.Money, error) {
	v, ok := r.lookup(keys...)
	if !ok {
		return sharedvo.ZeroMoney(currency), nil
	}
	var d decimal.Decimal
	switch t := v.(type) {
	case float64:
		d = decimal.NewFromFloat(t)
	case int:
		d = decimal.NewFromInt(int64(t))
	case int64:
		d = decimal.NewFromInt(t)
	case json.Number:
		parsed, err := decimal.NewFromString(t.String())
		if err != nil {
			return sharedvo.Money{}, fmt.Errorf("invalid amount %q: %w", t, err)
		}
		d = parsed
	case string:
		parsed, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(t), ",", ""))
		if err != nil {
			return sharedvo.Money{}, fmt.Errorf("invalid amount %q: %w", t, err)
		}
		d = parsed
	default:
		return sharedvo.Money{}, fmt.Errorf("invalid amount of type %T", v)
	}
	return sharedvo.NewMoney(d, currency), nil
}

func (r *legacyRecord) timestamp(keys ...string) time.Time {
	v, ok := r.lookup(keys...)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(t))
		if err != nil {
			r.err = fmt.Errorf("invalid timestamp %q: %w", t, err)
			return time.Time{}
		}
		return parsed.UTC()
	case float64:
		// epoch milliseconds
		return time.UnixMilli(int64(t)).UTC()
	default:
		r.err = fmt.Errorf("invalid timestamp of type %T", v)
		return time.Time{}
	}
}

func (r *legacyRecord) stamp(atKey, byKey string) *Stamp {
	at := r.timestamp(atKey)
	if at.IsZero() {
		r.lookup(byKey)
		return nil
	}
	return &Stamp{At: at, By: r.str(byKey)}
}

func (r *legacyRecord) leftovers() map[string]any {
	var out map[string]any
	for k, v := range r.raw {
		if r.used[k] {
			continue
		}
		if out == nil {
			out = map[string]any{}
		}
		out[k] = v
	}
	return out
}
