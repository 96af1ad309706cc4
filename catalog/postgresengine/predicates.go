package postgresengine

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// searchWhereExpressions composes the WHERE clause for one search request.
// Providers run in a fixed order (category groups, min price, max price,
// text, attributes) purely so the same request always renders the same SQL;
// the logic is an AND of independent predicates either way. Absent filter
// slices contribute nothing, so an unconstrained filter yields an empty
// expression list and with it a plain paginated scan.
func (cs CatalogStore) searchWhereExpressions(
	filter catalog.SearchFilter,
	groups []catalog.CategoryGroup,
) []goqu.Expression {

	expressions := make([]goqu.Expression, 0)

	expressions = append(expressions, cs.categoryGroupExpressions(groups)...)
	expressions = append(expressions, cs.priceExpressions(filter)...)

	if textExpression := cs.textSearchExpression(filter.SearchPatterns()); textExpression != nil {
		expressions = append(expressions, textExpression)
	}

	if attributeExpression := cs.attributeExpression(filter); attributeExpression != nil {
		expressions = append(expressions, attributeExpression)
	}

	return expressions
}

// categoryGroupExpressions requires membership in at least one requested
// category of every type represented among the resolved ids: ids within a
// group are alternatives, groups combine conjunctively. Each group becomes a
// membership subquery against the product-category link table.
func (cs CatalogStore) categoryGroupExpressions(groups []catalog.CategoryGroup) []goqu.Expression {
	expressions := make([]goqu.Expression, 0, len(groups))

	for _, group := range groups {
		membership := goqu.Dialect(dialectPostgres).
			From(cs.tables.ProductCategories).
			Select(colProductID).
			Where(goqu.C(colCategoryID).In(group.IDs))

		expressions = append(expressions, goqu.C(colID).In(membership))
	}

	return expressions
}

// priceExpressions turns the optional bounds into inclusive comparisons.
// The bounds are exact decimals and render as numeric literals, so no
// floating-point rounding can creep in.
func (cs CatalogStore) priceExpressions(filter catalog.SearchFilter) []goqu.Expression {
	expressions := make([]goqu.Expression, 0, 2)

	if min, ok := filter.MinPrice(); ok {
		expressions = append(expressions, goqu.C(colPrice).Gte(min.String()))
	}

	if max, ok := filter.MaxPrice(); ok {
		expressions = append(expressions, goqu.C(colPrice).Lte(max.String()))
	}

	return expressions
}

// textSearchExpression matches any pattern against any of the four text
// sources: title, description, article, and attribute values. All clauses
// combine with OR; a single hit anywhere is enough.
func (cs CatalogStore) textSearchExpression(patterns []string) goqu.Expression {
	if len(patterns) == 0 {
		return nil
	}

	clauses := make([]goqu.Expression, 0, len(patterns)*4)

	for _, pattern := range patterns {
		like := "%" + pattern + "%"

		attributeMatch := goqu.Dialect(dialectPostgres).
			From(cs.tables.Attributes).
			Select(colProductID).
			Where(goqu.C(colAttrValue).Like(like))

		clauses = append(clauses,
			goqu.Func(funcLower, goqu.C(colTitle)).Like(like),
			goqu.Func(funcLower, goqu.C(colDescription)).Like(like),
			goqu.Func(funcLower, goqu.C(colArticle)).Like(like),
			goqu.C(colID).In(attributeMatch),
		)
	}

	return goqu.Or(clauses...)
}

// attributeExpression requires every requested key to be matched by any one
// of its requested values. Candidate attribute rows are selected with an OR
// of per-key clauses, grouped by product, and a product qualifies only when
// the number of distinct matched keys equals the number of requested keys.
// Keys and values are stored lowercase, so comparisons stay case-normalized.
func (cs CatalogStore) attributeExpression(filter catalog.SearchFilter) goqu.Expression {
	keys := filter.AttributeKeys()
	if len(keys) == 0 {
		return nil
	}

	attributes := filter.Attributes()

	keyClauses := make([]goqu.Expression, 0, len(keys))
	for _, key := range keys {
		keyClauses = append(keyClauses, goqu.And(
			goqu.C(colAttrKey).Eq(key),
			goqu.C(colAttrValue).In(attributes[key]),
		))
	}

	matched := goqu.Dialect(dialectPostgres).
		From(cs.tables.Attributes).
		Select(colProductID).
		Where(goqu.Or(keyClauses...)).
		GroupBy(colProductID).
		Having(goqu.COUNT(goqu.DISTINCT(colAttrKey)).Eq(len(keys)))

	return goqu.C(colID).In(matched)
}
