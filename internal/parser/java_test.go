package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/px/internal/model"
)

const loginModel = `package pages;

import org.openqa.selenium.By;

public class LoginModel {
    // public static By commented = By.id("nope");
    public static By userName = By.id("username");
    public static By submitButton = By.cssSelector("form > button.submit");
    public static By errorBanner = By.xpath("//div[@class=\"error\"]");

    public static By linkHelp = By.linkText("Help");
}
`

func TestParsePageObject_PageName(t *testing.T) {
	po := ParsePageObject(loginModel)
	require.NotNil(t, po)
	assert.Equal(t, "Login", po.PageName)
}

func TestParsePageObject_ElementsInOrder(t *testing.T) {
	po := ParsePageObject(loginModel)
	require.NotNil(t, po)
	require.Len(t, po.Elements, 4)

	assert.Equal(t, ParsedElement{Name: "User Name", SelectorType: model.SelectorID, SelectorValue: "username"}, po.Elements[0])
	assert.Equal(t, ParsedElement{Name: "Submit Button", SelectorType: model.SelectorCSS, SelectorValue: "form > button.submit"}, po.Elements[1])
	assert.Equal(t, ParsedElement{Name: "Error Banner", SelectorType: model.SelectorXPath, SelectorValue: `//div[@class="error"]`}, po.Elements[2])
	assert.Equal(t, ParsedElement{Name: "Link Help", SelectorType: model.SelectorID, SelectorValue: "Help"}, po.Elements[3])
	assert.Empty(t, po.Failed)
}

func TestParsePageObject_NoModelClass(t *testing.T) {
	content := `public class LoginPage {
    public static By userName = By.id("username");
}`
	assert.Nil(t, ParsePageObject(content))
}

func TestParsePageObject_FailedDeclaration(t *testing.T) {
	content := `public class CartModel {
    public static By total = By.id("total");
    public static By someName = By.id(SOME_CONSTANT);
    public static By other = By.xpath('single');
}`
	po := ParsePageObject(content)
	require.NotNil(t, po)
	require.Len(t, po.Elements, 1)
	assert.Equal(t, "Total", po.Elements[0].Name)
	assert.Equal(t, []string{"someName", "other"}, po.Failed)
}

func TestParsePageObject_EscapedQuote(t *testing.T) {
	content := `public class QuoteModel {
    public static By quoted = By.cssSelector("a\"b");
}`
	po := ParsePageObject(content)
	require.NotNil(t, po)
	require.Len(t, po.Elements, 1)
	assert.Equal(t, `a"b`, po.Elements[0].SelectorValue)
}

func TestParsePageObject_TurkishIdentifier(t *testing.T) {
	content := `public class GirisModel {
    public static By kullanıcıAdı = By.id("user");
}`
	po := ParsePageObject(content)
	require.NotNil(t, po)
	require.Len(t, po.Elements, 1)
	assert.Equal(t, "Kullanıcı Adı", po.Elements[0].Name)
}

func TestParsePageObject_SkipsBlockCommentOpener(t *testing.T) {
	content := `public class HomeModel {
    /* public static By hidden = By.id("hidden"); */
    public static By shown = By.id("shown");
}`
	po := ParsePageObject(content)
	require.NotNil(t, po)
	require.Len(t, po.Elements, 1)
	assert.Equal(t, "Shown", po.Elements[0].Name)
}

func TestParsePageObject_IgnoresUnrelatedLines(t *testing.T) {
	content := `public class HomeModel {
    private By notStatic = By.id("x");
    public static String NAME = "home";
}`
	po := ParsePageObject(content)
	require.NotNil(t, po)
	assert.Empty(t, po.Elements)
	assert.Empty(t, po.Failed)
}

func TestParsePageObject_Deterministic(t *testing.T) {
	assert.Equal(t, ParsePageObject(loginModel), ParsePageObject(loginModel))
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"submitButton":   "Submit Button",
		"id":             "Id",
		"SearchBox":      "Search Box",
		"loginURL":       "Login U R L",
		"kullanıcıŞifre": "KullanıcıŞifre",
		"şifreGir":       "şifre Gir",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Humanize(in), in)
	}
}
