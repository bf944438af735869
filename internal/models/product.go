package models

import "github.com/shopspring/decimal"

// Product represents a product in the catalog. Optional columns are pointers so
// that an absent JSON field is stored as NULL rather than a zero value.
type Product struct {
	ID             int64            `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name           *string          `json:"st_produto" gorm:"column:st_produto;type:varchar(255)"`
	Description    *string          `json:"st_descricao" gorm:"column:st_descricao;type:text"`
	Collection     *string          `json:"st_colecao" gorm:"column:st_colecao;type:varchar(255)"`
	Cost           *decimal.Decimal `json:"nu_custo" gorm:"column:nu_custo;type:decimal(10,2)"`
	Price          *decimal.Decimal `json:"nu_preco" gorm:"column:nu_preco;type:decimal(10,2)"`
	Quantity       *int64           `json:"nu_quantidade" gorm:"column:nu_quantidade"`
	ImageURL       *string          `json:"st_urlimagem" gorm:"column:st_urlimagem;type:text"`
	ExtraImageURLs StringList       `json:"st_urlimagemextra" gorm:"column:st_urlimagemextra"`
	ExtraVideoURLs StringList       `json:"st_urlvideoextra" gorm:"column:st_urlvideoextra"`
}

// TableName pins the table name.
func (Product) TableName() string {
	return "products"
}

// MutableColumns lists every column an update overwrites.
var MutableColumns = []string{
	"st_produto",
	"st_descricao",
	"st_colecao",
	"nu_custo",
	"nu_preco",
	"nu_quantidade",
	"st_urlimagem",
	"st_urlimagemextra",
	"st_urlvideoextra",
}
