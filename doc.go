/*
Package img2pdf combines a list of images into a single PDF document, one page per image.
Every page has the exact pixel dimensions of its source image, so the pages of the same
document can have different sizes. The images can be reordered before the conversion
and previewed as thumbnails.

The package comes with a command line interface and a small desktop window.
To check the supported commands type:

	$ img2pdf --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"

		"github.com/esimov/img2pdf"
	)

	func main() {
		p := img2pdf.New(img2pdf.Options{})
		p.Add("cover.jpg", "page1.png", "page2.png")
		p.MoveUp(2)

		res, err := p.Assemble("book")
		if err != nil {
			fmt.Printf("Error creating the document: %s", err.Error())
			return
		}
		fmt.Printf("%d pages written to %s", len(res.Pages), res.Output)
	}
*/
package img2pdf
