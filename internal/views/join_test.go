package views

import (
	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/openmarket"
)

const strongPassword = "Hodu1234!"

func (s *ViewsTestSuite) join() *JoinView {
	return NewJoinView(s.svc, s.fx, s.fx, JoinOptions{})
}

func (s *ViewsTestSuite) fill(v *JoinView, kind models.UserType) {
	for _, in := range []struct {
		field Field
		value string
	}{
		{FieldUsername, "hodu01"},
		{FieldPassword, strongPassword},
		{FieldPasswordConfirm, strongPassword},
		{FieldName, "  호두  "},
		{FieldPhonePrefix, "011"},
		{FieldPhoneMiddle, "12-34"},
		{FieldPhoneLast, "5678"},
	} {
		_, err := v.Input(kind, in.field, in.value)
		s.Require().NoError(err)
	}
}

func (s *ViewsTestSuite) TestUsernameMessages() {
	v := s.join()

	snap, _ := v.Input(models.UserTypeBuyer, FieldUsername, "  ")
	s.Equal(FieldMessage{Text: "필수 정보입니다.", Kind: MessageError}, snap.Form.Messages[FieldUsername])
	s.Equal(MarkError, snap.Form.Marks[FieldUsername])

	snap, _ = v.Input(models.UserTypeBuyer, FieldUsername, "hodu_01")
	s.Equal("20자 이내의 영문 소문자, 대문자, 숫자만 사용 가능합니다.", snap.Form.Messages[FieldUsername].Text)

	snap, _ = v.Input(models.UserTypeBuyer, FieldUsername, "hodu01")
	s.NotContains(snap.Form.Messages, FieldUsername)
	s.NotContains(snap.Form.Marks, FieldUsername)
}

func (s *ViewsTestSuite) TestCheckUsernameOutcomes() {
	v := s.join()
	kind := models.UserTypeBuyer

	snap, err := v.CheckUsername(s.ctx, kind)
	s.Require().NoError(err)
	s.Equal("필수 정보입니다.", snap.Form.Messages[FieldUsername].Text)

	_, _ = v.Input(kind, FieldUsername, "hodu01")
	snap, err = v.CheckUsername(s.ctx, kind)
	s.Require().NoError(err)
	s.Equal(FieldMessage{Text: "멋진 아이디네요 :)", Kind: MessageSuccess}, snap.Form.Messages[FieldUsername])
	s.True(snap.Form.UsernameChecked)

	stored, err := s.svc.Auth.CheckedUsername(s.ctx, kind)
	s.Require().NoError(err)
	s.Equal("hodu01", stored)

	s.market.checkErr = &openmarket.APIError{StatusCode: 400, Body: []byte(`{"error":"exists"}`)}
	snap, err = v.CheckUsername(s.ctx, kind)
	s.Require().NoError(err)
	s.Equal("이미 사용 중인 아이디입니다.", snap.Form.Messages[FieldUsername].Text)
	s.False(snap.Form.UsernameChecked)

	s.market.checkErr = &openmarket.TransportError{Op: "validate", Err: openmarket.ErrUndecodable}
	snap, err = v.CheckUsername(s.ctx, kind)
	s.Require().NoError(err)
	s.Equal("서버 연결에 실패했습니다.", snap.Form.Messages[FieldUsername].Text)
	s.False(snap.Form.UsernameChecked)
}

func (s *ViewsTestSuite) TestPasswordConfirmFollowsPassword() {
	v := s.join()
	kind := models.UserTypeBuyer

	snap, _ := v.Input(kind, FieldPassword, "short")
	s.Equal("8자 이상, 영문 대 소문자, 숫자, 특수문자를 사용하세요.", snap.Form.Messages[FieldPassword].Text)

	_, _ = v.Input(kind, FieldPassword, strongPassword)
	snap, _ = v.Input(kind, FieldPasswordConfirm, strongPassword)
	s.Equal(MarkSuccess, snap.Form.Marks[FieldPasswordConfirm])

	snap, _ = v.Input(kind, FieldPassword, strongPassword+"x")
	s.Equal("비밀번호가 일치하지 않습니다.", snap.Form.Messages[FieldPasswordConfirm].Text)
	s.Equal(MarkError, snap.Form.Marks[FieldPasswordConfirm])
}

func (s *ViewsTestSuite) TestBlurRequiresValue() {
	v := s.join()
	kind := models.UserTypeSeller

	for _, f := range []Field{FieldUsername, FieldPassword, FieldPasswordConfirm, FieldName} {
		snap, err := v.Blur(kind, f)
		s.Require().NoError(err)
		s.Equal("필수 정보입니다.", snap.Forms[1].Messages[f].Text, f)
	}
	_, err := v.Blur(kind, Field("nickname"))
	s.ErrorIs(err, ErrUnknownField)
}

func (s *ViewsTestSuite) TestPhoneMarkers() {
	v := s.join()
	kind := models.UserTypeBuyer

	snap, _ := v.Input(kind, FieldPhoneMiddle, "")
	s.Equal("필수 정보입니다.", snap.Form.Messages[FieldPhoneMiddle].Text)
	s.Equal(MarkError, snap.Form.Marks[FieldPhoneMiddle])
	s.Equal(MarkError, snap.Form.Marks[FieldPhoneLast])

	snap, _ = v.Input(kind, FieldPhoneMiddle, "12ab345")
	s.Equal("1234", snap.Form.PhoneMiddle)
	s.NotContains(snap.Form.Marks, FieldPhoneMiddle)
	s.Equal(MarkError, snap.Form.Marks[FieldPhoneLast])

	snap, _ = v.Input(kind, FieldPhoneLast, "56")
	s.Equal("올바른 전화번호를 입력해주세요.", snap.Form.Messages[FieldPhoneMiddle].Text)
	s.Equal(MarkError, snap.Form.Marks[FieldPhoneMiddle])

	snap, _ = v.Input(kind, FieldPhoneLast, "5678")
	s.NotContains(snap.Form.Messages, FieldPhoneMiddle)
	s.Equal(MarkSuccess, snap.Form.Marks[FieldPhoneLast])

	_, err := v.Input(kind, FieldPhonePrefix, "012")
	s.Error(err)
}

func (s *ViewsTestSuite) TestSubmitGating() {
	v := s.join()
	kind := models.UserTypeBuyer
	s.fill(v, kind)

	s.False(v.CanSubmit())
	_, err := v.CheckUsername(s.ctx, kind)
	s.Require().NoError(err)
	s.False(v.CanSubmit())

	s.True(v.SetAgreement(true).SubmitEnabled)

	snap, _ := v.SelectTab(models.UserTypeSeller)
	s.False(snap.SubmitEnabled)
	snap, _ = v.SelectTab(models.UserTypeBuyer)
	s.True(snap.SubmitEnabled)

	snap, _ = v.Input(kind, FieldUsername, "hodu02")
	s.False(snap.SubmitEnabled)
	snap, _ = v.Input(kind, FieldUsername, "hodu01")
	s.False(snap.SubmitEnabled)

	s.False(v.Submit(s.ctx))
	s.Empty(s.market.signups)

	_, _ = v.CheckUsername(s.ctx, kind)
	s.False(v.ToggleAgreement().SubmitEnabled)
	s.True(v.ToggleAgreement().SubmitEnabled)
}

func (s *ViewsTestSuite) TestSubmitSignsUp() {
	v := s.join()
	kind := models.UserTypeSeller
	_, _ = v.SelectTab(kind)
	s.fill(v, kind)
	_, _ = v.CheckUsername(s.ctx, kind)
	v.SetAgreement(true)

	s.True(v.Submit(s.ctx))

	s.Require().Len(s.market.signups, 1)
	s.Equal(openmarket.SignupRequest{
		Username:    "hodu01",
		Password:    strongPassword,
		Name:        "호두",
		PhoneNumber: "01112345678",
	}, s.market.signups[0])
	s.Equal([]models.UserType{kind}, s.market.signupKind)
	s.Equal([]string{"회원가입이 완료되었습니다! 로그인 페이지로 이동합니다."}, s.fx.alerts)
	s.Equal([]string{PageLogin}, s.fx.navigate)

	stored, err := s.svc.Auth.CheckedUsername(s.ctx, kind)
	s.Require().NoError(err)
	s.Empty(stored)
}

func (s *ViewsTestSuite) TestSubmitRejections() {
	v := s.join()
	kind := models.UserTypeBuyer
	s.fill(v, kind)
	_, _ = v.CheckUsername(s.ctx, kind)
	v.SetAgreement(true)

	s.market.signupErr = &openmarket.APIError{StatusCode: 400, Body: []byte(`{"phone_number":["해당 사용자 전화번호는 이미 존재합니다."]}`)}
	s.False(v.Submit(s.ctx))
	s.Empty(s.fx.alerts)
	s.Equal("해당 사용자 전화번호는 이미 존재합니다.", v.Snapshot().Form.Messages[FieldPhoneMiddle].Text)

	s.market.signupErr = &openmarket.APIError{StatusCode: 400, Body: []byte(`{"username":["a"],"password":["b"]}`)}
	s.False(v.Submit(s.ctx))
	s.Equal("a\nb", s.fx.alerts[0])

	s.market.signupErr = &openmarket.APIError{StatusCode: 500, Body: []byte(`{}`)}
	s.False(v.Submit(s.ctx))
	s.Equal("회원가입에 실패했습니다.", s.fx.alerts[1])

	s.market.signupErr = &openmarket.TransportError{Op: "signup", Err: openmarket.ErrUndecodable}
	s.False(v.Submit(s.ctx))
	s.Equal("서버 연결에 실패했습니다.", s.fx.alerts[2])
	s.Empty(s.fx.navigate)
}

func (s *ViewsTestSuite) TestRestoreChecks() {
	first := s.join()
	s.fill(first, models.UserTypeBuyer)
	_, err := first.CheckUsername(s.ctx, models.UserTypeBuyer)
	s.Require().NoError(err)

	second := s.join()
	s.fill(second, models.UserTypeBuyer)
	s.fill(second, models.UserTypeSeller)
	s.Require().NoError(second.RestoreChecks(s.ctx))

	snap := second.Snapshot()
	s.True(snap.Forms[0].UsernameChecked)
	s.False(snap.Forms[1].UsernameChecked)
}

func (s *ViewsTestSuite) TestEditedUsernameNeedsNewCheck() {
	kind := models.UserTypeBuyer
	replay := func(username string) *JoinView {
		v := s.join()
		s.fill(v, kind)
		_, err := v.Input(kind, FieldUsername, username)
		s.Require().NoError(err)
		s.Require().NoError(v.RestoreChecks(s.ctx))
		v.SetAgreement(true)
		return v
	}

	checked := replay("hodu01")
	_, err := checked.CheckUsername(s.ctx, kind)
	s.Require().NoError(err)
	s.True(checked.CanSubmit())

	s.True(replay("hodu01").CanSubmit())

	edited := replay("hodu02")
	s.False(edited.Snapshot().Form.UsernameChecked)
	confirmed, err := s.svc.Auth.CheckedUsername(s.ctx, kind)
	s.Require().NoError(err)
	s.Empty(confirmed)

	back := replay("hodu01")
	s.False(back.Snapshot().Form.UsernameChecked)
	s.False(back.CanSubmit())
	s.False(back.Submit(s.ctx))
	s.Empty(s.market.signups)
}

func (s *ViewsTestSuite) TestRestoreKeepsCheckOfUntouchedForm() {
	first := s.join()
	s.fill(first, models.UserTypeSeller)
	_, err := first.CheckUsername(s.ctx, models.UserTypeSeller)
	s.Require().NoError(err)

	second := s.join()
	s.fill(second, models.UserTypeBuyer)
	s.Require().NoError(second.RestoreChecks(s.ctx))

	confirmed, err := s.svc.Auth.CheckedUsername(s.ctx, models.UserTypeSeller)
	s.Require().NoError(err)
	s.Equal("hodu01", confirmed)
}
