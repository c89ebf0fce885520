package blog

import (
	"errors"
	"strings"
	"time"

	"travel-agency/apperror"
	"travel-agency/controllers/base"
	"travel-agency/database"
	"travel-agency/logger"
	blogModel "travel-agency/models/blog"
	blogTypes "travel-agency/types/blog"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BlogController struct {
	base.Controller
	DB *gorm.DB
}

func NewBlogController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BlogController {
	return &BlogController{
		Controller: base.Controller{Logger: asyncLogger},
		DB:         db,
	}
}

func slugConflict(slug string) error {
	return apperror.Conflict("Article with slug '%s' already exists", slug)
}

// slugTaken reports whether another article already uses slug.
func (bc *BlogController) slugTaken(db *gorm.DB, slug string, exceptID uint) (bool, error) {
	var count int64
	err := db.Model(&blogModel.BlogArticle{}).Where("slug = ? AND id <> ?", slug, exceptID).Count(&count).Error
	return count > 0, err
}

func (bc *BlogController) save(c *fiber.Ctx, article *blogModel.BlogArticle, create bool) error {
	return bc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		taken, err := bc.slugTaken(tx, article.Slug, article.ID)
		if err != nil {
			return apperror.Internal("Failed to check article slug", err)
		}
		if taken {
			return slugConflict(article.Slug)
		}

		if create {
			err = tx.Create(article).Error
		} else {
			err = tx.Save(article).Error
		}
		if database.IsUniqueViolation(err) {
			return slugConflict(article.Slug)
		}
		if err != nil {
			return apperror.Internal("Failed to save article", err)
		}
		return nil
	})
}

func (bc *BlogController) findByID(c *fiber.Ctx) (*blogModel.BlogArticle, error) {
	id, err := bc.ID(c, "Article")
	if err != nil {
		return nil, err
	}
	var article blogModel.BlogArticle
	if err := bc.DB.WithContext(c.UserContext()).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Article not found")
		}
		return nil, apperror.Internal("Failed to load article", err)
	}
	return &article, nil
}

// Index lists articles, most recently published first
func (bc *BlogController) Index(c *fiber.Ctx) error {
	page := utils.ParsePage(c, 20, 50)
	query := bc.DB.WithContext(c.UserContext())
	if utils.QueryBool(c, "published_only", true) {
		query = query.Where("is_published = ?", true)
	}

	var articles []blogModel.BlogArticle
	if err := query.Order("published_at DESC, created_at DESC, id DESC").Limit(page.Limit).Offset(page.Offset).Find(&articles).Error; err != nil {
		return bc.Fail(c, apperror.Internal("Failed to list articles", err))
	}
	return bc.OK(c, "Articles retrieved successfully", articles)
}

// Show returns a published article by its slug
func (bc *BlogController) Show(c *fiber.Ctx) error {
	slug := strings.ToLower(c.Params("slug"))
	var article blogModel.BlogArticle
	err := bc.DB.WithContext(c.UserContext()).Where("slug = ? AND is_published = ?", slug, true).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bc.Fail(c, apperror.NotFound("Article not found"))
		}
		return bc.Fail(c, apperror.Internal("Failed to load article", err))
	}
	return bc.OK(c, "Article retrieved successfully", article)
}

func (bc *BlogController) AdminIndex(c *fiber.Ctx) error {
	page := utils.ParsePage(c, 50, 200)
	var articles []blogModel.BlogArticle
	if err := bc.DB.WithContext(c.UserContext()).Order("created_at DESC, id DESC").Limit(page.Limit).Offset(page.Offset).Find(&articles).Error; err != nil {
		return bc.Fail(c, apperror.Internal("Failed to list articles", err))
	}
	return bc.OK(c, "Articles retrieved successfully", articles)
}

func (bc *BlogController) AdminShow(c *fiber.Ctx) error {
	article, err := bc.findByID(c)
	if err != nil {
		return bc.Fail(c, err)
	}
	return bc.OK(c, "Article retrieved successfully", article)
}

func (bc *BlogController) Store(c *fiber.Ctx) error {
	var req blogTypes.BlogCreateRequest
	if err := bc.Bind(c, &req); err != nil {
		return bc.Fail(c, err)
	}
	article := req.ToModel(time.Now().UTC())
	if err := bc.save(c, &article, true); err != nil {
		return bc.Fail(c, err)
	}
	logger.Success("Blog article created: " + article.Slug)
	return bc.Created(c, "Article created successfully", article)
}

func (bc *BlogController) Update(c *fiber.Ctx) error {
	var req blogTypes.BlogUpdateRequest
	if err := bc.Bind(c, &req); err != nil {
		return bc.Fail(c, err)
	}
	article, err := bc.findByID(c)
	if err != nil {
		return bc.Fail(c, err)
	}
	req.Apply(article, time.Now().UTC())
	if err := bc.save(c, article, false); err != nil {
		return bc.Fail(c, err)
	}
	return bc.OK(c, "Article updated successfully", article)
}

func (bc *BlogController) Destroy(c *fiber.Ctx) error {
	article, err := bc.findByID(c)
	if err != nil {
		return bc.Fail(c, err)
	}
	if err := bc.DB.WithContext(c.UserContext()).Delete(article).Error; err != nil {
		return bc.Fail(c, apperror.Internal("Failed to delete article", err))
	}
	return bc.NoContent(c)
}
