package component

import (
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Image property names.
const (
	ImageURIProperty = "imageURI"
	PendingProperty  = "pending"
	AltTextProperty  = "altText"
)

// Image shows a picture. While the image is pending, for example because it
// is still being generated, the page polls until it becomes available.
type Image struct {
	Base
	uri     *property.Bound[string]
	altText *property.Bound[string]
	pending *property.Bound[bool]
}

func NewImage(uri string) *Image {
	img := &Image{}
	img.init(img, ClassImage)
	img.uri = property.NewBound(img.support, ImageURIProperty, uri)
	img.altText = property.NewBound(img.support, AltTextProperty, "")
	img.pending = property.NewBound(img.support, PendingProperty, false)
	return img
}

func (img *Image) ImageURI() string { return img.uri.Get() }

func (img *Image) SetImageURI(uri string) property.Result[string] { return img.uri.Set(uri) }

func (img *Image) AltText() string { return img.altText.Get() }

func (img *Image) SetAltText(text string) property.Result[string] { return img.altText.Set(text) }

func (img *Image) Pending() bool { return img.pending.Get() }

func (img *Image) SetPending(pending bool) property.Result[bool] { return img.pending.Set(pending) }

func (img *Image) PropertyValue(name string) (any, bool) {
	switch name {
	case ImageURIProperty:
		return img.ImageURI(), true
	case AltTextProperty:
		return img.AltText(), true
	}
	return img.Base.PropertyValue(name)
}

func (img *Image) SetPropertyValue(name string, value any) error {
	switch name {
	case ImageURIProperty:
		return setString(img.uri, value)
	case AltTextProperty:
		return setString(img.altText, value)
	}
	return img.Base.SetPropertyValue(name, value)
}
