// Package pdfsource reads page content streams and their resources from PDF
// files using pdfcpu.
//
//	doc, err := pdfsource.Open("report.pdf")
//	if err != nil {
//	    return err
//	}
//	page, err := doc.Page(1)
//	if err != nil {
//	    return err
//	}
//	res := interpreter.New(page.Resources).Parse(page.Content)
//
// Resources are inherited from the page tree when a page has none of its
// own. Fonts keep embedded TrueType programs; color spaces cover the device
// families, ICCBased (by component count), Indexed and Pattern; external
// graphics states carry their line width.
package pdfsource
