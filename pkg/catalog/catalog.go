package catalog

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"library-management/pkg/circulation"
	"library-management/pkg/models"
)

// BookCatalog owns the book records the circulation engine references.
type BookCatalog struct {
	db *gorm.DB
}

func NewBookCatalog(db *gorm.DB) *BookCatalog {
	return &BookCatalog{db: db}
}

var ErrDuplicateIsbn = errors.New("a book with this ISBN already exists")

func (c *BookCatalog) CreateBook(title, author, isbn, category string) (*models.Book, error) {
	var existing models.Book
	err := c.db.Where("isbn = ?", isbn).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateIsbn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	book := models.Book{
		BookUid:   uuid.New().String(),
		Title:     title,
		Author:    author,
		Isbn:      isbn,
		Category:  category,
		Available: true,
	}
	if err := c.db.Create(&book).Error; err != nil {
		return nil, ErrDuplicateIsbn
	}
	return &book, nil
}

func (c *BookCatalog) FindBook(bookUid string) (*models.Book, error) {
	var book models.Book
	if err := c.db.Where("book_uid = ?", bookUid).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, circulation.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (c *BookCatalog) FindBookByIsbn(isbn string) (*models.Book, error) {
	var book models.Book
	if err := c.db.Where("isbn = ?", isbn).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, circulation.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (c *BookCatalog) AllBooks() ([]models.Book, error) {
	var books []models.Book
	err := c.db.Find(&books).Error
	return books, err
}

func (c *BookCatalog) DeleteBook(bookUid string) error {
	result := c.db.Where("book_uid = ?", bookUid).Delete(&models.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return circulation.ErrBookNotFound
	}
	return nil
}

// UserDirectory resolves the user references on borrows and
// reservations. Account management proper lives outside the
// circulation core; this is the lookup contract it consumes.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

var ErrDuplicateUser = errors.New("username or email already registered")

func (d *UserDirectory) RegisterUser(username, email string) (*models.User, error) {
	user := models.User{
		UserUid:  uuid.New().String(),
		Username: username,
		Email:    email,
	}
	if err := d.db.Create(&user).Error; err != nil {
		return nil, ErrDuplicateUser
	}
	return &user, nil
}

func (d *UserDirectory) FindUser(userUid string) (*models.User, error) {
	return d.findBy("user_uid = ?", userUid)
}

func (d *UserDirectory) FindUserByUsername(username string) (*models.User, error) {
	return d.findBy("username = ?", username)
}

func (d *UserDirectory) FindUserByEmail(email string) (*models.User, error) {
	return d.findBy("email = ?", email)
}

func (d *UserDirectory) findBy(query string, arg string) (*models.User, error) {
	var user models.User
	if err := d.db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, circulation.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
