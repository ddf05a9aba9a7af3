package main

import (
	"os"
	"reflect"
	"strings"

	"github.com/cafecito/beansack/core"
	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	typeops "github.com/mus-format/musgen-go/options/type"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/cafecito/beansack/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.ID]())
	g.AddDefinedType(reflect.TypeFor[core.Kind]())

	// Unix micro timestamps
	opts := typeops.WithTimeUnit(typeops.Micro)
	err = g.AddStruct(reflect.TypeFor[core.Bean](),
		structops.WithField(),     // URL
		structops.WithField(),     // Title
		structops.WithField(),     // Kind
		structops.WithField(),     // Source
		structops.WithField(),     // SharedIn
		structops.WithField(),     // Author
		structops.WithField(opts), // Created
		structops.WithField(opts), // Updated
		structops.WithField(),     // Summary
		structops.WithField(),     // Gist
		structops.WithField(),     // Content
		structops.WithField(),     // IsScraped
		structops.WithField(),     // Tags
		structops.WithField(),     // Categories
		structops.WithField(),     // Entities
		structops.WithField(),     // Regions
		structops.WithField(),     // Embedding
		structops.WithField(),     // ClusterID
		structops.WithField(),     // TrendScore
		structops.WithField(),     // Likes
		structops.WithField(),     // Comments
		structops.WithField())     // Shares
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Chatter](),
		structops.WithField(),     // URL
		structops.WithField(),     // ContainerURL
		structops.WithField(),     // Source
		structops.WithField(),     // Channel
		structops.WithField(opts), // Updated
		structops.WithField(),     // Likes
		structops.WithField(),     // Comments
		structops.WithField())     // Shares
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
