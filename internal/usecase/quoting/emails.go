package quoting

import (
	"fmt"

	"bluerhyno/internal/ports"
)

// Email bodies stay minimal on purpose; presentation-grade templates belong
// to the delivery side, the engine only owes the facts.

func confirmationEmail(customer ports.Customer, quote ports.Quote) ports.Email {
	body := fmt.Sprintf(
		"<h2>Thank you for your quote request!</h2>"+
			"<p>Dear %s,</p>"+
			"<p>We have received your quote request for a %s fence of %.0f ft.</p>"+
			"<p>Your quote reference number is: <strong>%s</strong></p>"+
			"<p>Use it together with your email to check the status of your quote.</p>",
		customer.FirstName, quote.MaterialType, quote.FenceLength, quote.ReferenceNumber,
	)
	return ports.Email{
		To:      customer.Email,
		Subject: "Quote Request Confirmation - Blue Rhyno Fencing",
		Body:    body,
	}
}

func businessCopyEmail(businessAddress string, customer ports.Customer, quote ports.Quote) ports.Email {
	body := fmt.Sprintf(
		"<h2>New Quote Request Received</h2>"+
			"<p>Customer: %s %s (%s, %s)</p>"+
			"<p>Address: %s, %s, %s %s</p>"+
			"<p>Material: %s, Fence Length: %.0f ft</p>"+
			"<p>HOA Approval: %s, City Approval: %s</p>"+
			"<p>%d photo(s) uploaded.</p>",
		customer.FirstName, customer.LastName, customer.Email, customer.PhoneNumber,
		customer.Address, customer.City, customer.State, customer.ZipCode,
		quote.MaterialType, quote.FenceLength,
		quote.HOAApproval, quote.CityApproval,
		len(quote.PhotoPaths),
	)
	return ports.Email{
		To:      businessAddress,
		Subject: fmt.Sprintf("New Quote Request #%s", quote.ReferenceNumber),
		Body:    body,
	}
}

func rejectionEmail(customer ports.Customer, quote ports.Quote, reason string) ports.Email {
	body := fmt.Sprintf(
		"<h2>Quote Request Update</h2>"+
			"<p>Dear %s,</p>"+
			"<p>We regret to inform you that we are unable to proceed with your "+
			"fence quote request at this time.</p>"+
			"<p><strong>Reason:</strong> %s</p>"+
			"<p>Reference Number: %s</p>",
		customer.FirstName, reason, quote.ReferenceNumber,
	)
	return ports.Email{
		To:      customer.Email,
		Subject: "Blue Rhyno Fencing - Quote Request Update",
		Body:    body,
	}
}
