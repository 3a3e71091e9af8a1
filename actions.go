package dataverse

import (
	"context"
	"fmt"
)

// QuoteState is the statecode of a quote row.
type QuoteState int

const (
	QuoteStateDraft QuoteState = iota
	QuoteStateActive
	QuoteStateWon
	QuoteStateClosed
)

// OrderState is the statecode of a salesorder row.
type OrderState int

const (
	OrderStateActive OrderState = iota
	OrderStateSubmitted
	OrderStateCanceled
	OrderStateFulfilled
	OrderStateInvoiced
)

// Email participation type masks for activity parties.
const (
	partySender       = 1
	partyToRecipient  = 2
	partyCcRecipient  = 3
	partyBccRecipient = 4
)

// Actions wraps the predefined Web API actions. Each call resets the
// client's query options before running.
type Actions struct {
	client *Client
}

// EmailTemplate describes a templated email to send through
// SendEmailFromTemplate.
type EmailTemplate struct {
	// TemplateID is the template row to render.
	TemplateID string

	// ContextTable and ContextRowID select the row whose data the template
	// body can reference.
	ContextTable string
	ContextRowID string

	// SenderID is the systemuser sending the email. Needs send-as privilege.
	SenderID string

	// Recipient contact ids per field.
	ToRecipientIDs  []string
	CcRecipientIDs  []string
	BccRecipientIDs []string
}

// SendEmailFromTemplate sends an email rendered from a template.
func (a *Actions) SendEmailFromTemplate(ctx context.Context, email EmailTemplate) (map[string]any, error) {
	addParties := func(ids []string, partyType int) []map[string]any {
		parties := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			parties = append(parties, map[string]any{
				"partyid_systemuser@odata.bind": fmt.Sprintf("/contacts(%s)", id),
				"participationtypemask":         partyType,
			})
		}
		return parties
	}

	parties := addParties([]string{email.SenderID}, partySender)
	parties = append(parties, addParties(email.ToRecipientIDs, partyToRecipient)...)
	parties = append(parties, addParties(email.CcRecipientIDs, partyCcRecipient)...)
	parties = append(parties, addParties(email.BccRecipientIDs, partyBccRecipient)...)

	a.client.Reset()
	a.client.query.SetAction("SendEmailFromTemplate")

	return a.client.Post(ctx, map[string]any{
		"TemplateId": email.TemplateID,
		"Regarding": map[string]any{
			"contactid":   email.ContextRowID,
			"@odata.type": "Microsoft.Dynamics.CRM." + email.ContextTable,
		},
		"Target": map[string]any{
			"regardingobjectid_contact@odata.bind": fmt.Sprintf("/contacts(%s)", email.ContextRowID),
			"email_activity_parties":               parties,
			"@odata.type":                          "Microsoft.Dynamics.CRM.email",
		},
	})
}

// ConvertQuoteToOrder converts a quote to a salesorder and returns the new
// order. Pass selected columns to trim the returned representation.
func (a *Actions) ConvertQuoteToOrder(ctx context.Context, quoteID string, selected []string) (map[string]any, error) {
	a.client.Reset()
	a.client.query.SetAction("ConvertQuoteToSalesOrder")

	columnSet := map[string]any{"AllColumns": true}
	if len(selected) > 0 {
		columnSet = map[string]any{"AllColumns": false, "Columns": selected}
	}

	return a.client.Post(ctx, map[string]any{"QuoteId": quoteID, "ColumnSet": columnSet})
}

// ActivateQuote moves a quote to the active state so it can be converted to
// a salesorder.
func (a *Actions) ActivateQuote(ctx context.Context, quoteID string, selected []string) (map[string]any, error) {
	a.client.Reset()
	a.client.query.SetTable("quotes")
	a.client.query.SetRowKey(quoteID)
	if len(selected) > 0 {
		a.client.query.SetSelect(selected)
	}

	return a.client.Patch(ctx, map[string]any{"statecode": int(QuoteStateActive)})
}

// WinQuote marks an active quote as won.
func (a *Actions) WinQuote(ctx context.Context, quoteID string) error {
	a.client.Reset()
	a.client.query.SetAction("WinQuote")

	_, err := a.client.Post(ctx, quoteCloseData(quoteID))
	return err
}

// CloseQuote closes a quote as cancelled.
func (a *Actions) CloseQuote(ctx context.Context, quoteID string) error {
	a.client.Reset()
	a.client.query.SetAction("CloseQuote")

	_, err := a.client.Post(ctx, quoteCloseData(quoteID))
	return err
}

func quoteCloseData(quoteID string) map[string]any {
	return map[string]any{
		"QuoteClose": map[string]any{
			"quoteid@odata.bind": fmt.Sprintf("/quotes(%s)", quoteID),
			"@odata.type":        "Microsoft.Dynamics.CRM.quoteclose",
		},
		"Status": -1,
	}
}

// ReviseQuote moves a quote back to the draft state.
func (a *Actions) ReviseQuote(ctx context.Context, quoteID string, selected []string) (map[string]any, error) {
	a.client.Reset()
	a.client.query.SetAction("ReviseQuote")

	data := map[string]any{"QuoteId": quoteID}
	if len(selected) > 0 {
		data["ColumnSet"] = selected
	}

	return a.client.Post(ctx, data)
}

// DeleteQuote deletes a quote.
func (a *Actions) DeleteQuote(ctx context.Context, quoteID string) error {
	a.client.Reset()
	a.client.query.SetTable("quotes")
	a.client.query.SetRowKey(quoteID)
	return a.client.Delete(ctx)
}

// CancelOrderReasonNoMoney is the default close reason for CancelOrder.
const CancelOrderReasonNoMoney = 4

// CancelOrder cancels a salesorder with the given close reason.
func (a *Actions) CancelOrder(ctx context.Context, orderID string, reason int) error {
	a.client.Reset()
	a.client.query.SetAction("CancelSalesOrder")

	_, err := a.client.Post(ctx, map[string]any{
		"OrderClose": map[string]any{
			"salesorderid@odata.bind": fmt.Sprintf("/salesorders(%s)", orderID),
			"@odata.type":             "Microsoft.Dynamics.CRM.orderclose",
		},
		"Status": reason,
	})
	return err
}

// DeleteOrder deletes a salesorder.
func (a *Actions) DeleteOrder(ctx context.Context, orderID string) error {
	a.client.Reset()
	a.client.query.SetTable("salesorders")
	a.client.query.SetRowKey(orderID)
	return a.client.Delete(ctx)
}

// CalculateQuotePrice recalculates the price of a quote.
func (a *Actions) CalculateQuotePrice(ctx context.Context, quoteID string) error {
	a.client.Reset()
	a.client.query.SetAction("CalculatePrice")

	_, err := a.client.Post(ctx, map[string]any{
		"Target": map[string]any{
			"quoteid":     quoteID,
			"@odata.type": "Microsoft.Dynamics.CRM.quote",
		},
	})
	return err
}
