package extract

// BuildInvoicePrompt returns the extraction prompt for supplier invoices.
func BuildInvoicePrompt() string {
	return `You are an invoice data extraction assistant. Analyze the provided supplier invoice and extract its data into the following JSON structure.

IMPORTANT INSTRUCTIONS:
- The invoice may span multiple pages. Extract ALL line items from every page into a single flat "items" array.
- It is critical that you extract EVERY line item. Do not skip, summarize, or omit any items.
- Amounts use a dot as decimal separator, no thousands separators (e.g. 1234.56).
- "tax_rate" is the VAT percentage applied to the line (e.g. 20 for 20%).
- "is_tax_exclusive" is true when the line's total_price is before VAT (HT), false when it includes VAT (TTC), and null when the invoice does not make this clear.
- "reference" is the supplier's article or SKU code when printed on the line; leave it empty otherwise.
- Normalize the invoice date to YYYY-MM-DD.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation.

The JSON object must follow this schema:
{
  "supplier_name": "",
  "invoice_number": "",
  "invoice_date": "",
  "currency": "",
  "items": [
    {
      "description": "",
      "reference": "",
      "quantity": 0,
      "unit_price": 0,
      "total_price": 0,
      "tax_rate": 0,
      "is_tax_exclusive": null
    }
  ],
  "subtotal": 0,
  "tax_amount": 0,
  "total_amount": 0
}

If a numeric line field (quantity, unit_price, total_price) is not printed on the invoice, omit the key entirely rather than writing 0. For text fields that are not present, use an empty string.`
}
