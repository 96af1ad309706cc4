package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/removeproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/categorybytitle"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/searchproducts"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/httpapi"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell/auth"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type queryHandlerFunc[Q shell.Query, R any] func(ctx context.Context, query Q) (R, error)

func (f queryHandlerFunc[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	return f(ctx, query)
}

type commandHandlerFunc[C shell.Command, R any] func(ctx context.Context, command C) (R, error)

func (f commandHandlerFunc[C, R]) Handle(ctx context.Context, command C) (R, error) {
	return f(ctx, command)
}

type fakeVerifier struct {
	role catalog.Role
	err  error
}

func (f fakeVerifier) VerifyToken(string) (auth.Claims, error) {
	if f.err != nil {
		return auth.Claims{}, f.err
	}

	return auth.Claims{Role: f.role}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func Test_SearchProducts_ParsesTheQueryAndRendersThePage(t *testing.T) {
	var capturedFilter catalog.SearchFilter

	deps := httpapi.Deps{
		SearchProducts: queryHandlerFunc[searchproducts.Query, searchproducts.Result](
			func(_ context.Context, query searchproducts.Query) (searchproducts.Result, error) {
				capturedFilter = query.Filter

				return searchproducts.Result{
					Page: catalog.ProductPage{
						Products: []catalog.Product{{
							ID:      10,
							Title:   "Oak Table",
							Article: "TBL-010",
							Price:   decimal.RequireFromString("249.00"),
						}},
						TotalCount: 1,
						PageNumber: 0,
						PageSize:   20,
					},
					Facets: catalog.AggregateFacets(nil),
				}, nil
			}),
	}

	router := httpapi.NewRouter(deps)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet,
		"/products/search?categoryIds=3,7&minPrice=10&color=red,blue&searchText=oak", nil)

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	assert.Equal(t, []int64{3, 7}, capturedFilter.CategoryIDs())
	assert.Equal(t, []string{"blue", "red"}, capturedFilter.Attributes()["color"])
	min, ok := capturedFilter.MinPrice()
	require.True(t, ok)
	assert.True(t, min.Equal(decimal.RequireFromString("10")))

	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.EqualValues(t, 1, response["totalCount"])

	products := response["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Oak Table", products[0].(map[string]any)["title"])
}

func Test_SearchProducts_MalformedFilterIsABadRequest(t *testing.T) {
	deps := httpapi.Deps{
		SearchProducts: queryHandlerFunc[searchproducts.Query, searchproducts.Result](
			func(context.Context, searchproducts.Query) (searchproducts.Result, error) {
				t.Fatal("handler must not run for a malformed filter")
				return searchproducts.Result{}, nil
			}),
	}

	router := httpapi.NewRouter(deps)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/products/search?minPrice=cheap", nil)

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func Test_AdminRoutes_RequireABearerTokenWithAdminRole(t *testing.T) {
	testCases := []struct {
		name       string
		authHeader string
		verifier   httpapi.TokenVerifier
		wantStatus int
	}{
		{
			name:       "missing token",
			authHeader: "",
			verifier:   fakeVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer broken",
			verifier:   fakeVerifier{err: auth.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-admin role",
			authHeader: "Bearer valid",
			verifier:   fakeVerifier{role: catalog.RoleUser},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin role",
			authHeader: "Bearer valid",
			verifier:   fakeVerifier{role: catalog.RoleAdmin},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deps := httpapi.Deps{
				Tokens: tc.verifier,
				CreateProduct: commandHandlerFunc[createproduct.Command, int64](
					func(context.Context, createproduct.Command) (int64, error) {
						return 42, nil
					}),
			}

			router := httpapi.NewRouter(deps)
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/products",
				strings.NewReader(`{"title":"Lamp","article":"L-1","price":"10.00"}`))
			request.Header.Set("Content-Type", "application/json")
			if tc.authHeader != "" {
				request.Header.Set("Authorization", tc.authHeader)
			}

			router.ServeHTTP(recorder, request)

			assert.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}

func Test_RemoveProduct_UnknownIDIsNotFound(t *testing.T) {
	deps := httpapi.Deps{
		Tokens: fakeVerifier{role: catalog.RoleAdmin},
		RemoveProduct: commandHandlerFunc[removeproduct.Command, int64](
			func(context.Context, removeproduct.Command) (int64, error) {
				return 0, catalog.ErrProductNotFound
			}),
	}

	router := httpapi.NewRouter(deps)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/products/404", nil)
	request.Header.Set("Authorization", "Bearer valid")

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func Test_CategoryByTitle_QueriesTheRequestedTitle(t *testing.T) {
	deps := httpapi.Deps{
		CategoryByTitle: queryHandlerFunc[categorybytitle.Query, catalog.Category](
			func(_ context.Context, query categorybytitle.Query) (catalog.Category, error) {
				if query.Title != "Lighting" {
					return catalog.Category{}, catalog.ErrCategoryNotFound
				}

				return catalog.Category{ID: 3, Title: "Lighting", Type: catalog.CategoryTypeType}, nil
			}),
	}

	router := httpapi.NewRouter(deps)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/categories/title?title=Lighting", nil)

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.EqualValues(t, 3, response["id"])
	assert.Equal(t, "Lighting", response["title"])
}

func Test_CategoryByTitle_UnknownTitleIsNotFound(t *testing.T) {
	deps := httpapi.Deps{
		CategoryByTitle: queryHandlerFunc[categorybytitle.Query, catalog.Category](
			func(context.Context, categorybytitle.Query) (catalog.Category, error) {
				return catalog.Category{}, catalog.ErrCategoryNotFound
			}),
	}

	router := httpapi.NewRouter(deps)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/categories/title?title=Outdoor", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func Test_Login_WithoutAuthWiringIsServiceUnavailable(t *testing.T) {
	router := httpapi.NewRouter(httpapi.Deps{})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secret"}`))
	request.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func Test_Health_IsAlwaysOK(t *testing.T) {
	router := httpapi.NewRouter(httpapi.Deps{})
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
