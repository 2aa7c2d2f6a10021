// Package render assembles the descriptive pom.xml document and persists it.
package render

import (
	"strings"

	"github.com/viant/pomgen/collect"
	"github.com/viant/pomgen/model"
	"github.com/viant/pomgen/scope"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`
	projectOpen    = `<project xmlns="http://maven.apache.org/POM/4.0.0" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://maven.apache.org/POM/4.0.0 http://maven.apache.org/xsd/maven-4.0.0.xsd">`
	modelVersion   = "4.0.0"
	inceptionYear  = "2015"
	licenseName    = "Apache License, Version 2.0"
	licenseURL     = "http://www.apache.org/licenses/LICENSE-2.0.txt"
	licenseDist    = "repo"
)

const generatedComment = `  <!--
    This file was generated. It summarizes the project's first-level external
    dependencies with inferred scopes, for human and tool consumption only.
    It is not a buildable Maven POM and is not the authoritative build
    definition.
  -->`

// Render produces the full pom.xml text for the given identity and ordered
// dependency entries. Rendering is pure string construction and never fails.
func Render(identity model.Identity, entries []collect.Entry) string {
	builder := &strings.Builder{}
	builder.WriteString(xmlDeclaration)
	builder.WriteString("\n")
	builder.WriteString(projectOpen)
	builder.WriteString("\n")
	writeElement(builder, "  ", "modelVersion", modelVersion)

	builder.WriteString("\n")
	builder.WriteString(generatedComment)
	builder.WriteString("\n")

	builder.WriteString("\n")
	writeElement(builder, "  ", "groupId", identity.GroupID)
	writeElement(builder, "  ", "artifactId", identity.ArtifactID)
	writeElement(builder, "  ", "version", identity.Version)

	builder.WriteString("\n")
	writeElement(builder, "  ", "inceptionYear", inceptionYear)

	builder.WriteString("\n")
	builder.WriteString("  <licenses>\n")
	builder.WriteString("    <license>\n")
	writeElement(builder, "      ", "name", licenseName)
	writeElement(builder, "      ", "url", licenseURL)
	writeElement(builder, "      ", "distribution", licenseDist)
	builder.WriteString("    </license>\n")
	builder.WriteString("  </licenses>\n")

	builder.WriteString("\n")
	builder.WriteString("  <dependencies>\n")
	for _, entry := range entries {
		builder.WriteString("    <dependency>\n")
		writeElement(builder, "      ", "groupId", entry.Group)
		writeElement(builder, "      ", "artifactId", entry.Artifact)
		writeElement(builder, "      ", "version", entry.Version)
		if entry.Scope != scope.Undefined {
			writeElement(builder, "      ", "scope", string(entry.Scope))
		}
		builder.WriteString("    </dependency>\n")
	}
	builder.WriteString("  </dependencies>\n")
	builder.WriteString("</project>\n")
	return builder.String()
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func writeElement(builder *strings.Builder, indent, name, value string) {
	builder.WriteString(indent)
	builder.WriteString("<")
	builder.WriteString(name)
	builder.WriteString(">")
	builder.WriteString(textEscaper.Replace(value))
	builder.WriteString("</")
	builder.WriteString(name)
	builder.WriteString(">\n")
}
