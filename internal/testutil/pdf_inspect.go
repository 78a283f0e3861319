package testutil

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ImageInfo сведения об XObject на странице документа
type ImageInfo struct {
	Page     int
	Name     string
	ObjNr    int
	Subtype  string
	Width    int
	Height   int
	Filter   string
	HasSMask bool
}

// InspectXObjects читает документ и перечисляет XObject всех страниц
func InspectXObjects(data []byte) ([]ImageInfo, error) {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	// PageCount заполняется только при валидации
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	var infos []ImageInfo
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageDict, _, inhPAttrs, err := ctx.PageDict(pageNr, false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}

		var resources types.Dict
		if obj, found := pageDict.Find("Resources"); found {
			if resources, err = ctx.DereferenceDict(obj); err != nil {
				return nil, err
			}
		} else if inhPAttrs != nil {
			resources = inhPAttrs.Resources
		}
		if resources == nil {
			continue
		}

		obj, found := resources.Find("XObject")
		if !found {
			continue
		}
		xobjects, err := ctx.DereferenceDict(obj)
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(xobjects))
		for name := range xobjects {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			indRef, ok := xobjects[name].(types.IndirectRef)
			if !ok {
				continue
			}
			sd, _, err := ctx.DereferenceStreamDict(indRef)
			if err != nil || sd == nil {
				return nil, fmt.Errorf("xobject %s: %v", name, err)
			}

			info := ImageInfo{Page: pageNr, Name: name, ObjNr: indRef.ObjectNumber.Value()}
			if s := sd.Subtype(); s != nil {
				info.Subtype = *s
			}
			if w := sd.IntEntry("Width"); w != nil {
				info.Width = *w
			}
			if h := sd.IntEntry("Height"); h != nil {
				info.Height = *h
			}
			if f := sd.NameEntry("Filter"); f != nil {
				info.Filter = *f
			}
			_, info.HasSMask = sd.Find("SMask")

			infos = append(infos, info)
		}
	}

	return infos, nil
}

// Images возвращает только изображения из списка XObject
func Images(infos []ImageInfo) []ImageInfo {
	var images []ImageInfo
	for _, info := range infos {
		if info.Subtype == "Image" {
			images = append(images, info)
		}
	}
	return images
}
