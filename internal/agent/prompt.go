package agent

import (
	"fmt"
	"strings"

	"github.com/aura-finance/backend/internal/models"
)

// maxContentLength limits the email content sent to the model. Bank alerts
// are short, anything beyond this is footer text.
const maxContentLength = 8000

const systemInstruction = "You categorize personal spending for a budgeting app. " +
	"You read transaction alert emails from banks and card issuers and answer with STRICT JSON only. " +
	"Do NOT wrap the response in code fences. Do NOT use ```json or any Markdown."

func categorizePrompt(in Input) string {
	var b strings.Builder

	b.WriteString("Task:\n")
	b.WriteString("- Find the merchant (vendor) that was paid, as written in the email.\n")
	b.WriteString("- Find the amount that was spent as a positive number, without currency.\n")
	b.WriteString("- Pick the ONE category from the list below that fits the spend best.\n")
	b.WriteString("- Rate your confidence as \"high\", \"medium\" or \"low\".\n\n")

	writeCategories(&b, in.Categories)
	writeCorrections(&b, in.Corrections)

	b.WriteString("Answer with a JSON object with these fields:\n")
	b.WriteString("- \"vendor\": string\n")
	b.WriteString("- \"amount\": number or null if the email does not state one\n")
	b.WriteString("- \"category\": string, exactly one of the category names above\n")
	b.WriteString("- \"confidence\": string\n")
	b.WriteString("- \"description\": string, a short description of the purchase\n\n")

	fmt.Fprintf(&b, "Email subject: %s\n\nEmail content:\n%s\n", in.Subject, truncate(in.Content, maxContentLength))

	return b.String()
}

func recategorizePrompt(in RecategorizeInput) string {
	var b strings.Builder

	b.WriteString("Task:\n")
	b.WriteString("- The user says the category of a transaction is wrong.\n")
	b.WriteString("- Propose the category from the list below that fits better, considering the feedback.\n")
	b.WriteString("- Explain your choice in one or two sentences addressed to the user.\n\n")

	writeCategories(&b, in.Categories)
	writeCorrections(&b, in.Corrections)

	b.WriteString("Transaction:\n")
	fmt.Fprintf(&b, "- Vendor: %s\n", in.Transaction.Vendor)
	fmt.Fprintf(&b, "- Amount: %s\n", in.Transaction.Amount.StringFixed(2))
	fmt.Fprintf(&b, "- Date: %s\n", in.Transaction.Date.Format("2006-01-02"))
	if in.Transaction.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", in.Transaction.Description)
	}
	fmt.Fprintf(&b, "- Current category: %s\n\n", in.CurrentCategory)

	if len(in.ConversationHistory) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, m := range in.ConversationHistory {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User feedback: %s\n\n", in.FeedbackText)

	b.WriteString("Answer with a JSON object with these fields:\n")
	b.WriteString("- \"category\": string, exactly one of the category names above\n")
	b.WriteString("- \"reasoning\": string\n")

	return b.String()
}

func writeCategories(b *strings.Builder, categories []models.Category) {
	b.WriteString("Categories:\n")
	for _, c := range categories {
		fmt.Fprintf(b, "- %s\n", c.Name)
	}
	b.WriteString("\n")
}

func writeCorrections(b *strings.Builder, corrections []models.Correction) {
	if len(corrections) == 0 {
		return
	}

	b.WriteString("The user corrected these categorizations before, follow them for the same vendor:\n")
	for _, c := range corrections {
		fmt.Fprintf(b, "- %s: %s instead of %s", c.Vendor, c.NewCategory, c.OldCategory)
		if c.Reasoning != "" {
			fmt.Fprintf(b, " (%s)", c.Reasoning)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
