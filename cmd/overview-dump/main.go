package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rossostudios/puerta-abierta-sub004/coreapi"
	"github.com/rossostudios/puerta-abierta-sub004/models/reports"
)

// Ops tool: fetch a property's relation snapshot from the core API and
// print the built overview, bypassing the HTTP layer and the cache.
//
// Usage:
//   overview-dump -org <org-id> -property <property-id> [-locale es-PY] [-token <jwt>] [-xlsx out.xlsx]
func main() {
	orgId := flag.String("org", "", "Organization id (required)")
	propertyId := flag.String("property", "", "Property id (required)")
	locale := flag.String("locale", "es-PY", "Locale for labels: en-US or es-PY")
	token := flag.String("token", "", "Optional bearer token forwarded to the core API")
	xlsxPath := flag.String("xlsx", "", "Optional: write an XLSX export to this path instead of printing JSON")
	flag.Parse()

	godotenv.Load()

	if strings.TrimSpace(*orgId) == "" || strings.TrimSpace(*propertyId) == "" {
		fmt.Fprintln(os.Stderr, "both -org and -property are required")
		flag.Usage()
		os.Exit(1)
	}

	ctx := context.Background()
	client := coreapi.NewClient(*token)

	snapshot := client.LoadPropertyRelationSnapshot(ctx, strings.TrimSpace(*orgId), strings.TrimSpace(*propertyId))
	data := reports.BuildPropertyOverview(snapshot, strings.TrimSpace(*propertyId), *locale, time.Now())

	if strings.TrimSpace(*xlsxPath) != "" {
		f, err := reports.BuildOverviewWorkbook(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build workbook: %v\n", err)
			os.Exit(1)
		}
		if err := f.SaveAs(strings.TrimSpace(*xlsxPath)); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *xlsxPath, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", strings.TrimSpace(*xlsxPath))
		return
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal overview: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
