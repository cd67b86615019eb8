package registry

// Entity names known to the default registry.
const (
	Customer    = "customer"
	Category    = "category"
	Product     = "product"
	URLRewrite  = "url_rewrite"
	CatalogRule = "catalogrule"
	CartRule    = "cartrule"
	Quote       = "quote"
	Order       = "order"
)

// Magento indexer ids.
const (
	IndexerCustomerGrid       = "customer_grid"
	IndexerCategoryProduct    = "catalog_category_product"
	IndexerProductCategory    = "catalog_product_category"
	IndexerProductPrice       = "catalog_product_price"
	IndexerProductAttribute   = "catalog_product_attribute"
	IndexerInventoryStock     = "cataloginventory_stock"
	IndexerCatalogRuleRule    = "catalogrule_rule"
	IndexerCatalogRuleProduct = "catalogrule_product"
)

var defaultRegistry = New(
	Entry{Name: Customer, Recipe: Recipe{
		Delete: tables("customer_entity"),
		ResetAutoIncrement: []string{
			"customer_entity",
			"customer_entity_datetime",
			"customer_entity_decimal",
			"customer_entity_int",
			"customer_entity_text",
			"customer_entity_varchar",
			"customer_log",
			"customer_visitor",
			"customer_address_entity",
			"customer_address_entity_datetime",
			"customer_address_entity_decimal",
			"customer_address_entity_int",
			"customer_address_entity_text",
			"customer_address_entity_varchar",
		},
		Indexers: []string{IndexerCustomerGrid},
	}},
	Entry{Name: Category, Recipe: Recipe{
		// Root and default categories live at level 0 and 1.
		Delete: []DeleteSpec{{Table: "catalog_category_entity", Condition: "level > 1"}},
		ResetAutoIncrement: []string{
			"catalog_category_entity",
			"catalog_category_entity_datetime",
			"catalog_category_entity_decimal",
			"catalog_category_entity_int",
			"catalog_category_entity_text",
			"catalog_category_entity_varchar",
			"catalog_category_product",
		},
		Indexers: []string{IndexerCategoryProduct},
	}},
	Entry{Name: Product, Recipe: Recipe{
		Delete: tables("catalog_product_entity"),
		ResetAutoIncrement: []string{
			"catalog_compare_item",
			"catalog_product_bundle_option",
			"catalog_product_bundle_option_value",
			"catalog_product_bundle_selection",
			"catalog_product_bundle_selection_price",
			"catalog_product_entity",
			"catalog_product_entity_datetime",
			"catalog_product_entity_decimal",
			"catalog_product_entity_gallery",
			"catalog_product_entity_int",
			"catalog_product_entity_media_gallery",
			"catalog_product_entity_text",
			"catalog_product_entity_tier_price",
			"catalog_product_entity_varchar",
			"catalog_product_frontend_action",
			"catalog_product_link",
			"catalog_product_link_attribute",
			"catalog_product_link_attribute_decimal",
			"catalog_product_link_attribute_int",
			"catalog_product_link_attribute_varchar",
			"catalog_product_option",
			"catalog_product_option_price",
			"catalog_product_option_title",
			"catalog_product_option_type_price",
			"catalog_product_option_type_title",
			"catalog_product_option_type_value",
			"catalog_product_super_attribute",
			"catalog_product_super_attribute_label",
			"catalog_product_super_link",
			"cataloginventory_stock_item",
			"inventory_reservation",
			"inventory_source_item",
		},
		Indexers: []string{
			IndexerProductCategory,
			IndexerProductPrice,
			IndexerProductAttribute,
			IndexerInventoryStock,
		},
	}},
	Entry{Name: URLRewrite, Recipe: Recipe{
		Delete:             tables("url_rewrite"),
		ResetAutoIncrement: []string{"url_rewrite"},
	}},
	Entry{Name: CatalogRule, Recipe: Recipe{
		Delete: tables("catalogrule"),
		ResetAutoIncrement: []string{
			"catalogrule",
			"catalogrule_product",
			"catalogrule_product_price",
			"catalogrule_product_price_replica",
			"catalogrule_product_replica",
		},
		Indexers: []string{IndexerCatalogRuleRule, IndexerCatalogRuleProduct},
	}},
	Entry{Name: CartRule, Recipe: Recipe{
		Delete: tables("salesrule"),
		ResetAutoIncrement: []string{
			"salesrule",
			"salesrule_coupon",
			"salesrule_coupon_aggregated",
			"salesrule_coupon_aggregated_order",
			"salesrule_coupon_aggregated_updated",
			"salesrule_customer",
			"salesrule_label",
		},
	}},
	Entry{Name: Quote, Recipe: Recipe{
		Delete: tables("quote"),
		ResetAutoIncrement: []string{
			"quote",
			"quote_address",
			"quote_address_item",
			"quote_id_mask",
			"quote_item",
			"quote_item_option",
			"quote_payment",
			"quote_shipping_rate",
		},
	}},
	Entry{Name: Order, Recipe: Recipe{
		// Grid tables are not cascaded from sales_order.
		Delete: tables(
			"sales_order",
			"sales_order_grid",
			"sales_invoice_grid",
			"sales_shipment_grid",
			"sales_creditmemo_grid",
		),
		ResetAutoIncrement: []string{
			"sales_creditmemo",
			"sales_creditmemo_comment",
			"sales_creditmemo_item",
			"sales_invoice",
			"sales_invoice_comment",
			"sales_invoice_item",
			"sales_invoiced_aggregated",
			"sales_invoiced_aggregated_order",
			"sales_order",
			"sales_order_address",
			"sales_order_aggregated_created",
			"sales_order_aggregated_updated",
			"sales_order_item",
			"sales_order_payment",
			"sales_order_status_history",
			"sales_order_tax",
			"sales_order_tax_item",
			"sales_payment_transaction",
			"sales_refunded_aggregated",
			"sales_refunded_aggregated_order",
			"sales_shipment",
			"sales_shipment_comment",
			"sales_shipment_item",
			"sales_shipment_track",
			"sales_shipping_aggregated",
			"sales_shipping_aggregated_order",
		},
	}},
)

// Default returns the built-in Magento entity registry.
func Default() *Registry { return defaultRegistry }

// tables converts bare table names into unfiltered delete specs.
func tables(names ...string) []DeleteSpec {
	out := make([]DeleteSpec, 0, len(names))
	for _, n := range names {
		out = append(out, DeleteSpec{Table: n})
	}
	return out
}
