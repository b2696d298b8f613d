package graph

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JonathanDVZ/CRMGraphQL/internal/auth"
	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
	"github.com/JonathanDVZ/CRMGraphQL/internal/search"
	"github.com/JonathanDVZ/CRMGraphQL/internal/service"
)

var testSecret = []byte("test_secret")

func newTestSchema(t *testing.T) (graphql.Schema, *gorm.DB, *Resolver) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Client{},
		&models.Order{},
		&models.OrderLine{},
	))

	resolver := &Resolver{
		Users:    &service.UserService{DB: db, JWTSecret: testSecret},
		Products: &service.ProductService{DB: db, Search: &search.ProductSearch{DB: db, Index: search.DefaultIndex}},
		Clients:  &service.ClientService{DB: db},
		Orders:   &service.OrderService{DB: db},
	}

	schema, err := NewSchema(resolver)
	require.NoError(t, err)
	return schema, db, resolver
}

func identityCtx(user *models.User) context.Context {
	return auth.WithIdentity(context.Background(), &auth.Claims{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		LastName: user.LastName,
	})
}

func execute(t *testing.T, schema graphql.Schema, ctx context.Context, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()

	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
	require.Empty(t, result.Errors, "unexpected graphql errors: %v", result.Errors)
	return result.Data.(map[string]interface{})
}

func executeExpectError(t *testing.T, schema graphql.Schema, ctx context.Context, query string, vars map[string]interface{}) string {
	t.Helper()

	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
	require.NotEmpty(t, result.Errors, "expected graphql errors")
	return result.Errors[0].Message
}

func seedSeller(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Name: "Test", LastName: "Seller", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedClient(t *testing.T, db *gorm.DB, sellerID uint, email string) *models.Client {
	t.Helper()
	client := models.Client{Name: "Test", LastName: "Client", Company: "ACME", Email: email, SellerID: sellerID}
	require.NoError(t, db.Create(&client).Error)
	return &client
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock uint) *models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func TestUserLifecycle(t *testing.T) {
	schema, _, _ := newTestSchema(t)
	ctx := context.Background()

	data := execute(t, schema, ctx, `
		mutation($input: UserInput!) {
			newUser(input: $input) { id name lastname email }
		}`,
		map[string]interface{}{"input": map[string]interface{}{
			"name":     "Jonathan",
			"lastname": "Vaz",
			"email":    "jonathan@test.com",
			"password": "password",
		}},
	)
	newUser := data["newUser"].(map[string]interface{})
	require.Equal(t, "Jonathan", newUser["name"])
	require.Equal(t, "jonathan@test.com", newUser["email"])

	data = execute(t, schema, ctx, `
		mutation($input: AuthenticateInput!) {
			authenticateUser(input: $input) { token }
		}`,
		map[string]interface{}{"input": map[string]interface{}{
			"email":    "jonathan@test.com",
			"password": "password",
		}},
	)
	token := data["authenticateUser"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)

	authed := auth.WithIdentity(context.Background(), claims)
	data = execute(t, schema, authed, `query { getUser { name lastname email } }`, nil)
	require.Equal(t, "Jonathan", data["getUser"].(map[string]interface{})["name"])

	msg := executeExpectError(t, schema, context.Background(), `query { getUser { name } }`, nil)
	require.Contains(t, msg, "authentication required")
}

func TestNewOrderMutation(t *testing.T) {
	schema, db, _ := newTestSchema(t)

	seller := seedSeller(t, db, "seller@test.com")
	client := seedClient(t, db, seller.ID, "client@test.com")
	coffee := seedProduct(t, db, "Coffee", 10, 5)
	sugar := seedProduct(t, db, "Sugar", 2.5, 8)

	ctx := identityCtx(seller)
	data := execute(t, schema, ctx, `
		mutation($input: OrderInput!) {
			newOrder(input: $input) {
				id
				total
				status
				client { name email }
				order { id name quantity price }
			}
		}`,
		map[string]interface{}{"input": map[string]interface{}{
			"client": client.ID,
			"order": []interface{}{
				map[string]interface{}{"id": coffee.ID, "quantity": 2},
				map[string]interface{}{"id": sugar.ID, "quantity": 4},
			},
		}},
	)

	order := data["newOrder"].(map[string]interface{})
	require.Equal(t, 30.0, order["total"])
	require.Equal(t, "PENDING", order["status"])
	require.Equal(t, "client@test.com", order["client"].(map[string]interface{})["email"])

	lines := order["order"].([]interface{})
	require.Len(t, lines, 2)
	first := lines[0].(map[string]interface{})
	require.Equal(t, "Coffee", first["name"])
	require.Equal(t, 2, first["quantity"])
	require.Equal(t, 10.0, first["price"])

	var product models.Product
	require.NoError(t, db.First(&product, coffee.ID).Error)
	require.Equal(t, uint(3), product.Stock)
}

func TestNewOrderErrors(t *testing.T) {
	schema, db, _ := newTestSchema(t)

	seller := seedSeller(t, db, "seller@test.com")
	other := seedSeller(t, db, "other@test.com")
	client := seedClient(t, db, seller.ID, "client@test.com")
	coffee := seedProduct(t, db, "Coffee", 10, 2)

	orderQuery := `
		mutation($input: OrderInput!) {
			newOrder(input: $input) { id }
		}`
	vars := func(clientID, productID uint, qty int) map[string]interface{} {
		return map[string]interface{}{"input": map[string]interface{}{
			"client": clientID,
			"order": []interface{}{
				map[string]interface{}{"id": productID, "quantity": qty},
			},
		}}
	}

	msg := executeExpectError(t, schema, context.Background(), orderQuery, vars(client.ID, coffee.ID, 1))
	require.Contains(t, msg, "authentication required")

	msg = executeExpectError(t, schema, identityCtx(other), orderQuery, vars(client.ID, coffee.ID, 1))
	require.Contains(t, msg, "another seller")

	msg = executeExpectError(t, schema, identityCtx(seller), orderQuery, vars(999, coffee.ID, 1))
	require.Contains(t, msg, "client not found")

	msg = executeExpectError(t, schema, identityCtx(seller), orderQuery, vars(client.ID, 999, 1))
	require.Contains(t, msg, "product not found")

	msg = executeExpectError(t, schema, identityCtx(seller), orderQuery, vars(client.ID, coffee.ID, 3))
	require.Contains(t, msg, "not enough Coffee items")

	// Nothing above may have touched stock.
	var product models.Product
	require.NoError(t, db.First(&product, coffee.ID).Error)
	require.Equal(t, uint(2), product.Stock)
}

func TestOrderQueriesAndCancellation(t *testing.T) {
	schema, db, resolver := newTestSchema(t)

	seller := seedSeller(t, db, "seller@test.com")
	client := seedClient(t, db, seller.ID, "client@test.com")
	coffee := seedProduct(t, db, "Coffee", 10, 10)

	order, err := resolver.Orders.PlaceOrder(context.Background(), seller.ID, client.ID, []service.LineInput{
		{ProductID: coffee.ID, Quantity: 4},
	})
	require.NoError(t, err)

	ctx := identityCtx(seller)
	data := execute(t, schema, ctx, `
		query { getOrdersSeller { id total status client { email } order { name quantity } } }`, nil)
	orders := data["getOrdersSeller"].([]interface{})
	require.Len(t, orders, 1)
	got := orders[0].(map[string]interface{})
	require.Equal(t, 40.0, got["total"])
	require.Equal(t, "client@test.com", got["client"].(map[string]interface{})["email"])

	data = execute(t, schema, ctx, `
		mutation($id: ID!, $input: OrderInput!) {
			updateOrder(id: $id, input: $input) { id status }
		}`,
		map[string]interface{}{
			"id":    order.ID,
			"input": map[string]interface{}{"status": "CANCELLED"},
		},
	)
	require.Equal(t, "CANCELLED", data["updateOrder"].(map[string]interface{})["status"])

	var product models.Product
	require.NoError(t, db.First(&product, coffee.ID).Error)
	require.Equal(t, uint(10), product.Stock)
}

func TestBestClientsAndSellersQuery(t *testing.T) {
	schema, db, resolver := newTestSchema(t)

	seller := seedSeller(t, db, "seller@test.com")
	client := seedClient(t, db, seller.ID, "client@test.com")
	coffee := seedProduct(t, db, "Coffee", 10, 50)

	order, err := resolver.Orders.PlaceOrder(context.Background(), seller.ID, client.ID, []service.LineInput{
		{ProductID: coffee.ID, Quantity: 5},
	})
	require.NoError(t, err)

	completed := models.OrderStatusCompleted
	_, err = resolver.Orders.Update(context.Background(), seller.ID, order.ID, service.UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	data := execute(t, schema, context.Background(), `
		query {
			bestClients { total client { email } }
			bestSellers { total seller { email } }
		}`, nil)

	bestClients := data["bestClients"].([]interface{})
	require.Len(t, bestClients, 1)
	top := bestClients[0].(map[string]interface{})
	require.Equal(t, 50.0, top["total"])
	require.Equal(t, "client@test.com", top["client"].(map[string]interface{})["email"])

	bestSellers := data["bestSellers"].([]interface{})
	require.Len(t, bestSellers, 1)
	require.Equal(t, "seller@test.com", bestSellers[0].(map[string]interface{})["seller"].(map[string]interface{})["email"])
}

func TestProductMutations(t *testing.T) {
	schema, db, _ := newTestSchema(t)

	seller := seedSeller(t, db, "seller@test.com")
	ctx := identityCtx(seller)

	data := execute(t, schema, ctx, `
		mutation($input: ProductInput!) {
			newProduct(input: $input) { id name stock price }
		}`,
		map[string]interface{}{"input": map[string]interface{}{
			"name":  "Keyboard",
			"stock": 12,
			"price": 49.9,
		}},
	)
	product := data["newProduct"].(map[string]interface{})
	require.Equal(t, "Keyboard", product["name"])
	require.Equal(t, 12, product["stock"])

	id := product["id"].(string)
	data = execute(t, schema, ctx, `
		mutation($id: ID!) { deleteProduct(id: $id) }`,
		map[string]interface{}{"id": id},
	)
	require.Equal(t, "Product deleted!", data["deleteProduct"])

	msg := executeExpectError(t, schema, context.Background(), `
		mutation { newProduct(input: { name: "Nope", stock: 1 }) { id } }`, nil)
	require.Contains(t, msg, "authentication required")
}

func TestClientMutations(t *testing.T) {
	schema, db, _ := newTestSchema(t)

	seller := seedSeller(t, db, "seller@test.com")
	intruder := seedSeller(t, db, "intruder@test.com")
	ctx := identityCtx(seller)

	data := execute(t, schema, ctx, `
		mutation($input: ClientInput!) {
			newClient(input: $input) { id name company seller }
		}`,
		map[string]interface{}{"input": map[string]interface{}{
			"name":     "Maria",
			"lastname": "Lopez",
			"company":  "ACME",
			"email":    "maria@acme.com",
		}},
	)
	created := data["newClient"].(map[string]interface{})
	require.Equal(t, "ACME", created["company"])

	id := created["id"].(string)
	msg := executeExpectError(t, schema, identityCtx(intruder), `
		query($id: ID!) { getClient(id: $id) { name } }`,
		map[string]interface{}{"id": id},
	)
	require.Contains(t, msg, "another seller")

	data = execute(t, schema, ctx, `
		query($id: ID!) { getClient(id: $id) { name company } }`,
		map[string]interface{}{"id": id},
	)
	require.Equal(t, "Maria", data["getClient"].(map[string]interface{})["name"])
}

func TestSearchProductQuery(t *testing.T) {
	schema, db, _ := newTestSchema(t)

	seedProduct(t, db, "Mechanical Keyboard", 120, 4)
	seedProduct(t, db, "Mouse", 25, 30)

	data := execute(t, schema, context.Background(), `
		query { searchProduct(text: "Keyboard") { name price } }`, nil)
	found := data["searchProduct"].([]interface{})
	require.Len(t, found, 1)
	require.Equal(t, "Mechanical Keyboard", found[0].(map[string]interface{})["name"])
}
