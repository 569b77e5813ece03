package model

var categoryLabels = map[Category]string{
	CategoryContract:   "สัญญา",
	CategoryPayment:    "การจ่ายเงิน",
	CategoryDelivery:   "ใบส่งของ",
	CategoryCompletion: "ใบส่งงาน",
	CategoryProgress:   "ใบเบิกงวด",
	CategoryMemo:       "บันทึกข้อความ",
	CategoryInvoice:    "ใบแจ้งหนี้",
	CategoryReceipt:    "ใบเสร็จ",
	CategoryQuotation:  "ใบเสนอราคา",
	CategoryOther:      "อื่นๆ",
}

var variableTypeLabels = map[VariableType]string{
	VariableTypeText:      "ข้อความ",
	VariableTypeNumber:    "ตัวเลข",
	VariableTypeDate:      "วันที่",
	VariableTypeCurrency:  "เงิน",
	VariableTypeBoolean:   "ใช่/ไม่ใช่",
	VariableTypeImage:     "รูปภาพ",
	VariableTypeTable:     "ตาราง",
	VariableTypeSignature: "ลายเซ็น",
	VariableTypeBarcode:   "บาร์โค้ด",
	VariableTypeQRCode:    "QR Code",
}

// Label returns the display label for the category, falling back to the raw
// identifier for unknown values.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Label returns the display label for the variable type.
func (t VariableType) Label() string {
	if label, ok := variableTypeLabels[t]; ok {
		return label
	}
	return string(t)
}
