package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/hodu/storefront/internal/config"
	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/openmarket"
	"github.com/hodu/storefront/internal/storage"
)

type fakeAPI struct {
	products   map[int64]*models.Product
	lastQuery  openmarket.ProductQuery
	lastLogin  openmarket.LoginRequest
	loginErr   error
	noAccess   bool
	usernameOK bool
	signups    []openmarket.SignupRequest
}

func (f *fakeAPI) ListProducts(_ context.Context, q openmarket.ProductQuery) (*models.ProductPage, error) {
	f.lastQuery = q
	page := &models.ProductPage{}
	for _, p := range f.products {
		page.Results = append(page.Results, *p)
	}
	page.Count = len(page.Results)
	return page, nil
}

func (f *fakeAPI) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, &openmarket.APIError{StatusCode: 404, Body: []byte(`{"detail":"Not found."}`)}
}

func (f *fakeAPI) Login(_ context.Context, req openmarket.LoginRequest) (*openmarket.LoginResponse, error) {
	f.lastLogin = req
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.noAccess {
		return &openmarket.LoginResponse{Refresh: "refresh", User: json.RawMessage(`{}`)}, nil
	}
	return &openmarket.LoginResponse{Access: "access", Refresh: "refresh", User: json.RawMessage(`{"username":"` + req.Username + `"}`)}, nil
}

func (f *fakeAPI) ValidateUsername(_ context.Context, username string) error {
	if f.usernameOK {
		return nil
	}
	return &openmarket.APIError{StatusCode: 409, Body: []byte(`{"error":"taken"}`)}
}

func (f *fakeAPI) Signup(_ context.Context, kind models.UserType, req openmarket.SignupRequest) error {
	f.signups = append(f.signups, req)
	return nil
}

type ServicesTestSuite struct {
	suite.Suite
	api   *fakeAPI
	store storage.Store
	svc   *Services
	ctx   context.Context
}

func (s *ServicesTestSuite) SetupTest() {
	s.api = &fakeAPI{products: map[int64]*models.Product{
		1: {ID: 1, Name: "pen", Price: 1000, ShippingFee: 2500, Seller: "hodu"},
	}}
	s.store = storage.NewMemoryStore()
	assets, err := NewAssetService(config.AWSConfig{})
	s.Require().NoError(err)
	s.svc = NewServices(s.api, s.store, assets)
	s.ctx = context.Background()
}

func (s *ServicesTestSuite) TestListTrimsKeyword() {
	_, err := s.svc.Products.List(s.ctx, "  pen ", 2)
	s.Require().NoError(err)
	s.Equal(openmarket.ProductQuery{Search: "pen", Page: 2}, s.api.lastQuery)
}

func (s *ServicesTestSuite) TestGetWrapsAPIError() {
	_, err := s.svc.Products.Get(s.ctx, 99)
	apiErr, ok := openmarket.AsAPIError(err)
	s.Require().True(ok)
	s.Equal(404, apiErr.StatusCode)
}

func (s *ServicesTestSuite) TestLoginStoresWholeSession() {
	session, err := s.svc.Auth.Login(s.ctx, models.UserTypeSeller, "kim", "pw")
	s.Require().NoError(err)
	s.Equal(models.LoginTypeSeller, s.api.lastLogin.LoginType)
	s.Equal("kim", session.User().Username)

	current, err := s.svc.Sessions.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal(session.AccessToken, current.AccessToken)
	s.Equal(models.UserTypeSeller, current.UserType)
}

func (s *ServicesTestSuite) TestFailedLoginStoresNothing() {
	s.api.loginErr = &openmarket.APIError{StatusCode: 401, Body: []byte(`{"error":"no"}`)}

	_, err := s.svc.Auth.Login(s.ctx, models.UserTypeBuyer, "kim", "bad")
	s.Error(err)

	ok, err := s.svc.Sessions.Exists(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServicesTestSuite) TestLoginWithoutAccessTokenFails() {
	s.api.noAccess = true

	_, err := s.svc.Auth.Login(s.ctx, models.UserTypeBuyer, "kim", "pw")
	s.ErrorIs(err, ErrNoAccessToken)

	exists, err := s.svc.Sessions.Exists(s.ctx)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *ServicesTestSuite) TestPartialSessionIsClearedAndIgnored() {
	s.Require().NoError(s.store.SetMany(s.ctx, map[string]string{
		models.KeyAccessToken: "stale",
		models.KeyUserType:    "buyer",
	}))

	_, err := s.svc.Sessions.Current(s.ctx)
	s.ErrorIs(err, ErrNoSession)

	_, err = s.store.Get(s.ctx, models.KeyAccessToken)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *ServicesTestSuite) TestLogoutRemovesEveryKey() {
	_, err := s.svc.Auth.Login(s.ctx, models.UserTypeBuyer, "kim", "pw")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Auth.Logout(s.ctx))

	for _, key := range models.SessionKeys {
		_, err := s.store.Get(s.ctx, key)
		s.ErrorIs(err, storage.ErrNotFound, key)
	}
}

func (s *ServicesTestSuite) TestCartAddMerges() {
	merged, err := s.svc.Cart.Add(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.False(merged)

	merged, err = s.svc.Cart.Add(s.ctx, 1, 3)
	s.Require().NoError(err)
	s.True(merged)

	cart, err := s.svc.Cart.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.Cart{{ProductID: 1, Quantity: 5, Check: true}}, cart)
}

func (s *ServicesTestSuite) TestCorruptCartStartsOver() {
	s.Require().NoError(storage.Set(s.ctx, s.store, models.KeyCart, "{broken"))

	merged, err := s.svc.Cart.Add(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.False(merged)

	raw, err := s.store.Get(s.ctx, models.KeyCart)
	s.Require().NoError(err)
	s.JSONEq(`[{"product_id":1,"quantity":1,"check":true}]`, raw)
}

func (s *ServicesTestSuite) TestPurchaseStageOverwrites() {
	_, err := s.svc.Purchase.Current(s.ctx)
	s.ErrorIs(err, ErrNoPurchaseDraft)

	p := s.api.products[1]
	_, err = s.svc.Purchase.Stage(s.ctx, p, 2)
	s.Require().NoError(err)
	_, err = s.svc.Purchase.Stage(s.ctx, p, 7)
	s.Require().NoError(err)

	draft, err := s.svc.Purchase.Current(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(draft.Products, 1)
	s.Equal(7, draft.Products[0].Quantity)
}

func (s *ServicesTestSuite) TestCheckedUsernameRoundTrip() {
	name, err := s.svc.Auth.CheckedUsername(s.ctx, models.UserTypeBuyer)
	s.Require().NoError(err)
	s.Empty(name)

	s.Require().NoError(s.svc.Auth.RememberCheckedUsername(s.ctx, models.UserTypeBuyer, "kim"))
	name, err = s.svc.Auth.CheckedUsername(s.ctx, models.UserTypeBuyer)
	s.Require().NoError(err)
	s.Equal("kim", name)

	name, err = s.svc.Auth.CheckedUsername(s.ctx, models.UserTypeSeller)
	s.Require().NoError(err)
	s.Empty(name)

	s.Require().NoError(s.svc.Auth.ForgetCheckedUsername(s.ctx, models.UserTypeBuyer))
	name, _ = s.svc.Auth.CheckedUsername(s.ctx, models.UserTypeBuyer)
	s.Empty(name)
}

func (s *ServicesTestSuite) TestSignupJoinsPhone() {
	err := s.svc.Auth.Signup(s.ctx, models.UserTypeBuyer, &SignupRequest{
		Username: "kim", Password: "Abcdef1!", Name: "Kim",
		PhonePrefix: "010", PhoneMiddle: "1234", PhoneLast: "5678",
	})
	s.Require().NoError(err)
	s.Require().Len(s.api.signups, 1)
	s.Equal("01012345678", s.api.signups[0].PhoneNumber)
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

func TestParseProductID(t *testing.T) {
	id, err := ParseProductID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseProductID(raw)
		assert.Error(t, err, raw)
	}
}

func TestAssetServiceRelative(t *testing.T) {
	assets, err := NewAssetService(config.AWSConfig{})
	require.NoError(t, err)

	assert.Equal(t, "img/banner-1.jpg", assets.BannerSlides()[0])
	assert.Len(t, assets.BannerSlides(), 5)
	assert.Equal(t, DefaultProductImage, assets.ProductImage(" "))
	assert.Equal(t, "https://cdn.example/p.png", assets.ProductImage("https://cdn.example/p.png"))
}

func TestAssetServiceCloudFront(t *testing.T) {
	assets, err := NewAssetService(config.AWSConfig{CloudFrontURL: "https://d1.cloudfront.net/"})
	require.NoError(t, err)

	assert.Equal(t, "https://d1.cloudfront.net/img/banner-2.jpg", assets.BannerSlides()[1])
}

func TestAssetServicePresignsS3(t *testing.T) {
	assets, err := NewAssetService(config.AWSConfig{
		Region:          "ap-northeast-2",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		S3Bucket:        "hodu-assets",
		PresignTTL:      15,
	})
	require.NoError(t, err)

	url := assets.FallbackImage()
	assert.True(t, strings.HasPrefix(url, "https://hodu-assets.s3."), url)
	assert.Contains(t, url, "img/default-product.png")
	assert.Contains(t, url, "X-Amz-Signature=")
}

