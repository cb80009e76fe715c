package models

// Site представляет строительную площадку.
// После создания не изменяется и не удаляется.
type Site struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

// Material представляет вид материала (цемент, арматура и т.д.)
type Material struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}
