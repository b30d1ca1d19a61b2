// Package product mirrors catalog products into the Products collection.
//
// Rows lacking id, name, productFolder, salePrices, attributes or images are
// dropped before sync. For each product the transformer:
//
//   - takes subcategory_id and suplier_id from the trailing segment of the folder
//     and supplier meta hrefs,
//   - resolves category_id through the category hierarchy; an unknown subcategory
//     leaves it nil, so the mirrored value is kept,
//   - divides the first sale price by 100 using decimal arithmetic,
//   - joins stock by assortment id, defaulting to 0,
//   - keeps a mirrored img that already points at the image CDN.
//
// ImageList builds the payload sent to the downstream image service.
package product
