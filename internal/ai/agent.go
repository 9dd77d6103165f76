package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-smartstore/internal/store"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// RunAgent answers a shop owner's question using tools that read and write
// the store: inventory lookups, sales numbers, price changes.
func RunAgent(userMessage string, apiKey string, st *store.Store) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the SmartStore shop assistant.

	RULES:
	1. UPDATE: If a user asks to change a product's price by NAME, do NOT ask for the ID. Instead:
	   - Call 'check_inventory' to find the product id.
	   - Call 'update_product_price' using that id.

	2. READ: If a user asks for PRICE, COST, STOCK, or DETAILS of a product:
	   - Call 'check_inventory' to get the full list and read the answer from the JSON.

	3. SALES: If the user asks for sales or revenue, use 'get_sales_report'.

	USER: %s`, today, userMessage)

	// --- DEFINE TOOLS ---
	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY product details like id, name, sell price, cost price, or stock.",
				},
				{
					Name:        "update_product_price",
					Description: "Update the sell price of a specific product using its id",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"product_id": {Type: genai.TypeString, Description: "Id of the product, e.g. 'p1'"},
							"new_price":  {Type: genai.TypeNumber, Description: "New sell price"},
						},
						Required: []string{"product_id", "new_price"},
					},
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// --- HANDLE TOOL CALLS ---
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {

			if funcCall.Name == "check_inventory" {
				finalResp, err := session.SendMessage(ctx, inventoryResponse(st))
				if err != nil {
					return "", err
				}
				return handleRecursiveToolCalls(ctx, session, finalResp, st), nil
			}

			if funcCall.Name == "update_product_price" {
				return executeUpdatePrice(ctx, session, funcCall, st), nil
			}

			if funcCall.Name == "get_sales_report" {
				return executeSalesReport(ctx, session, funcCall, st), nil
			}
		}
	}

	return printResponse(resp), nil
}

// --- HELPER FUNCTIONS ---

// handleRecursiveToolCalls lets the model chain one follow-up action after
// reading the inventory (the name-to-id flow in RULE 1).
func handleRecursiveToolCalls(ctx context.Context, session *genai.ChatSession, resp *genai.GenerateContentResponse, st *store.Store) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			if funcCall.Name == "update_product_price" {
				return executeUpdatePrice(ctx, session, funcCall, st)
			}
		}
	}
	return printResponse(resp)
}

func inventoryResponse(st *store.Store) genai.FunctionResponse {
	type SimpleProduct struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Stock     float64 `json:"stock"`
		SellPrice float64 `json:"sellPrice"`
		CostPrice float64 `json:"costPrice"`
	}

	var simpleList []SimpleProduct
	for _, p := range st.Products() {
		simpleList = append(simpleList, SimpleProduct{
			ID:        p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			SellPrice: p.SellPrice,
			CostPrice: p.CostPrice,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	return genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	}
}

func executeUpdatePrice(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall, st *store.Store) string {
	args := funcCall.Args
	productID, _ := args["product_id"].(string)
	newPrice, _ := args["new_price"].(float64)

	msg := "Success"
	updated := false
	for _, p := range st.Products() {
		if p.ID == productID {
			p.SellPrice = newPrice
			if _, err := st.SaveProduct(p); err != nil {
				msg = "Failed to save product"
			}
			updated = true
			break
		}
	}
	if !updated {
		msg = "Product id not found"
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "update_product_price",
		Response: map[string]interface{}{"status": msg, "new_price": newPrice},
	})
	return printResponse(finalResp)
}

func executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall, st *store.Store) string {
	args := funcCall.Args
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)

	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	revenue, count := st.SalesBetween(start, end)

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     revenue,
			"sales_count": count,
		},
	})
	return printResponse(finalResp)
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
