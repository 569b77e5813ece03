package render

import "github.com/goliatone/go-doctemplate/pkg/model"

// Section is a static block appended after the substituted body for every
// category that is not excluded.
type Section struct {
	Name    string
	Content string
	Exclude []model.Category
}

// AppliesTo reports whether the section is appended for category.
func (s Section) AppliesTo(category model.Category) bool {
	if s.Content == "" {
		return false
	}
	for _, excluded := range s.Exclude {
		if excluded == category {
			return false
		}
	}
	return true
}

const signatureBlock = `<div class="signature-section">
  <div class="signature-box">
    <p>ลงชื่อ ผู้ทำสัญญา</p>
    <p>(...............................)</p>
  </div>
  <div class="signature-box">
    <p>ลงชื่อ พยาน</p>
    <p>(...............................)</p>
  </div>
</div>`

// SignatureSection is the two-party signature block added to every category
// except memos.
var SignatureSection = Section{
	Name:    "signature",
	Content: signatureBlock,
	Exclude: []model.Category{model.CategoryMemo},
}
