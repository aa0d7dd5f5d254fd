package gdocai

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ToJSON converts various types to a pretty-printed JSON string
// It handles both protocol buffer messages and regular Go structs
func ToJSON(data any) (string, error) {
	switch v := data.(type) {
	case proto.Message:
		jsonData, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(jsonData), nil

	default:
		jsonData, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(jsonData), nil
	}
}

// ExtractImageFromPage pulls out the image data from a Document AI page
func ExtractImageFromPage(page *documentaipb.Document_Page) ([]byte, error) {
	if page == nil {
		return nil, fmt.Errorf("no documentai page provided")
	}

	image := page.GetImage()
	if image == nil {
		return nil, fmt.Errorf("no image found in documentai page")
	}

	content := image.GetContent()
	if len(content) == 0 {
		return nil, fmt.Errorf("image content is empty")
	}

	return content, nil
}

// imageType turns a MIME type such as image/png into PNG
func imageType(mimeType string) string {
	_, sub, ok := strings.Cut(mimeType, "/")
	if !ok {
		return ""
	}
	return strings.ToUpper(sub)
}

// polyBounds returns the extent of a bounding polygon in page units.
// Normalized vertices are scaled by the page dimension; pixel vertices are
// used as they are. Coordinates are rounded to whole units.
func polyBounds(poly *documentaipb.BoundingPoly, dim *documentaipb.Document_Page_Dimension) (x1, x2, y1, y2 float64, ok bool) {
	var xs, ys []float64
	switch {
	case poly == nil:
		return 0, 0, 0, 0, false
	case len(poly.NormalizedVertices) > 0 && dim != nil:
		for _, v := range poly.NormalizedVertices {
			xs = append(xs, float64(v.X)*float64(dim.Width))
			ys = append(ys, float64(v.Y)*float64(dim.Height))
		}
	case len(poly.Vertices) > 0:
		for _, v := range poly.Vertices {
			xs = append(xs, float64(v.X))
			ys = append(ys, float64(v.Y))
		}
	default:
		return 0, 0, 0, 0, false
	}

	x1, x2 = math.Round(slices.Min(xs)), math.Round(slices.Max(xs))
	y1, y2 = math.Round(slices.Min(ys)), math.Round(slices.Max(ys))
	return x1, x2, y1, y2, true
}
