package sierra

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/wippyai/cairo-io/errors"
)

type registryDoc struct {
	Sizes map[string]int16 `json:"sizes"`
	Types []*TypeInfo      `json:"types"`
}

// Parse reads a registry document:
//
//	{
//	  "types": [
//	    {"id": 0, "kind": "Felt252", "debug_name": "felt252"},
//	    {"id": 1, "kind": "Array", "inner": 0},
//	    {"id": 2, "kind": "Struct", "generic_args": [{"user_type": "app::Out"}], "members": [0, 1]}
//	  ],
//	  "sizes": {"0": 1, "1": 2, "2": 3}
//	}
//
// Every referenced id must be declared.
func Parse(data []byte) (Types, TypeSizes, error) {
	var doc registryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.ParseFailed("registry", err)
	}
	return Build(doc.Types, doc.Sizes)
}

// Build validates decoded registry entries and their size table.
func Build(infos []*TypeInfo, rawSizes map[string]int16) (Types, TypeSizes, error) {
	types := make(Types, len(infos))
	for _, info := range infos {
		if info == nil {
			return nil, nil, errors.ParseFailed("registry", fmt.Errorf("null type entry"))
		}
		if info.Kind == KindUnknown {
			return nil, nil, errors.ParseFailed("registry", fmt.Errorf("type %d: missing kind", info.ID))
		}
		if _, dup := types[info.ID]; dup {
			return nil, nil, errors.ParseFailed("registry", fmt.Errorf("duplicate type id %d", info.ID))
		}
		types[info.ID] = info
	}

	for _, id := range types.IDs() {
		if err := checkRefs(types, types[id]); err != nil {
			return nil, nil, errors.ParseFailed("registry", err)
		}
	}

	sizes := make(TypeSizes, len(rawSizes))
	for key, size := range rawSizes {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, nil, errors.ParseFailed("registry", fmt.Errorf("size key %q: %w", key, err))
		}
		if size < 0 {
			return nil, nil, errors.ParseFailed("registry", fmt.Errorf("negative size %d for type %d", size, id))
		}
		sizes[TypeID(id)] = size
	}
	return types, sizes, nil
}

func checkRefs(types Types, info *TypeInfo) error {
	ref := func(what string, id TypeID) error {
		if _, ok := types[id]; !ok {
			return fmt.Errorf("type %d (%s): %s references unknown type %d", info.ID, info.Kind, what, id)
		}
		return nil
	}

	if info.Kind.HasInner() {
		if err := ref("inner", info.Inner); err != nil {
			return err
		}
	}
	for _, m := range info.Members {
		if err := ref("member", m); err != nil {
			return err
		}
	}
	for _, v := range info.Variants {
		if err := ref("variant", v); err != nil {
			return err
		}
	}
	for _, g := range info.GenericArgs {
		if g.Type != nil {
			if err := ref("generic argument", *g.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

// Marshal renders a registry in the Parse format.
func Marshal(types Types, sizes TypeSizes) ([]byte, error) {
	doc := registryDoc{
		Types: make([]*TypeInfo, 0, len(types)),
		Sizes: make(map[string]int16, len(sizes)),
	}
	for _, id := range types.IDs() {
		doc.Types = append(doc.Types, types[id])
	}
	for id, size := range sizes {
		doc.Sizes[strconv.FormatUint(uint64(id), 10)] = size
	}
	return json.Marshal(doc)
}
