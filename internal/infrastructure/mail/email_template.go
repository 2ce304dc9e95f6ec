package mail

import (
	"fmt"
	"html"
	"strings"
)

// EmailTemplateService 이메일 템플릿 생성 서비스
type EmailTemplateService struct {
	appURL      string
	serviceName string
}

// NewEmailTemplateService 이메일 템플릿 서비스 생성
func NewEmailTemplateService(appURL, serviceName string) *EmailTemplateService {
	return &EmailTemplateService{
		appURL:      strings.TrimRight(appURL, "/"),
		serviceName: serviceName,
	}
}

// InvitationSubject 초대 메일 제목
func (s *EmailTemplateService) InvitationSubject(workspaceName string) string {
	return fmt.Sprintf("[%s] %s 워크스페이스에 초대되었습니다", s.serviceName, workspaceName)
}

// GenerateInvitationEmailHTML 워크스페이스 초대 메일 HTML 생성. 입력값은 HTML 이스케이프됩니다.
func (s *EmailTemplateService) GenerateInvitationEmailHTML(inviteeName, inviterName, workspaceName, workspaceID, role string) string {
	link := fmt.Sprintf("%s/workspaces/%s", s.appURL, workspaceID)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="ko">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>%[3]s 워크스페이스 초대</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Apple SD Gothic Neo', 'Malgun Gothic', sans-serif; background-color: #f7f9fc;">
	<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
		<tr>
			<td align="center" style="padding: 30px 0; background-color: #5271ff; color: #ffffff;">
				<h1 style="margin: 0; font-size: 24px;">워크스페이스 초대</h1>
			</td>
		</tr>
		<tr>
			<td style="padding: 40px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
				<p style="margin-top: 0;">안녕하세요, <strong style="color: #5271ff;">%[1]s</strong>님!</p>
				<p><strong>%[2]s</strong>님이 <strong>%[3]s</strong> 워크스페이스에 <strong>%[4]s</strong> 역할로 초대했습니다.</p>
				<p style="text-align: center; padding: 20px 0;">
					<a href="%[5]s" style="background-color: #5271ff; color: #ffffff; padding: 12px 32px; border-radius: 6px; text-decoration: none;">워크스페이스 열기</a>
				</p>
			</td>
		</tr>
		<tr>
			<td align="center" style="padding: 20px; color: #999999; font-size: 12px;">%[6]s</td>
		</tr>
	</table>
</body>
</html>`,
		html.EscapeString(inviteeName),
		html.EscapeString(inviterName),
		html.EscapeString(workspaceName),
		html.EscapeString(role),
		html.EscapeString(link),
		html.EscapeString(s.serviceName),
	)
}
